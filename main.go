package main

import "github.com/ethiack/job-manager/pkg/cli"

func main() {
	cli.Execute()
}
