// Command demoserver runs a local fake of the job API so the CLI can be
// exercised without credentials for the real service:
//
//	go run ./cmd/demoserver
//	ETHIACK_API_URL=http://localhost:9090 ETHIACK_API_KEY=demo \
//	  ETHIACK_API_SECRET=demo job-manager launch https://example.com --wait
package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/ethiack/job-manager/internal/demoserver"
	"github.com/ethiack/job-manager/internal/logger"
)

func main() {
	cfg := demoserver.DefaultConfig()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.APIKey, "api-key", "", "required API key (empty accepts any)")
	flag.StringVar(&cfg.APISecret, "api-secret", "", "required API secret (empty accepts any)")
	flag.DurationVar(&cfg.PendingFor, "pending-for", cfg.PendingFor, "how long launched jobs stay PENDING")
	flag.DurationVar(&cfg.RunningFor, "running-for", cfg.RunningFor, "how long jobs stay IN_PROGRESS")
	flag.Parse()

	logger.Setup(logrus.InfoLevel, false, "")

	if err := demoserver.New(cfg).Start(); err != nil {
		logrus.WithError(err).Fatal("demo server stopped")
	}
}
