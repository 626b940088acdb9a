package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethiack/job-manager/internal/api"
)

// exitCode is the single place that maps typed core errors onto process
// exit codes. The core always raises; it never inspects whether a CLI is
// driving it.
func exitCode(err error) int {
	var cfgErr *api.ConfigError
	if errors.As(err, &cfgErr) {
		return 2
	}
	return 1
}

// finish is the tail of every command: a failure either aborts the run or,
// with fail unset, is downgraded to a printed message; a success is echoed
// as indented JSON when echo is set.
func finish(v any, err error, echo, fail bool) error {
	if err != nil {
		if !fail {
			fmt.Fprintln(os.Stderr, err)
			return nil
		}
		return err
	}
	if echo {
		return echoJSON(v)
	}
	return nil
}

func echoJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newClient builds an API client from the process environment.
func newClient() *api.Client {
	return api.New(api.FromEnv(), nil)
}
