package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ethiack/job-manager/internal/api"
	"github.com/ethiack/job-manager/internal/schema"
)

func newAwaitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "await <uuid>",
		Short:   "Wait for a job to finish",
		Example: "job-manager await 1b6d8f7e --timeout 600",
		Args:    cobra.ExactArgs(1),
		RunE:    runAwait,
	}

	cmd.Flags().Int("timeout", 3600, "Maximum time to wait for the job to finish in seconds")
	cmd.Flags().String("severity", schema.SeverityMedium.String(),
		"Minimum severity level that should fail: "+strings.Join(schema.SeverityNames(), "|"))
	cmd.Flags().Bool("echo", true, "Echo the response as JSON")
	cmd.Flags().Bool("fail", true, "Exit with nonzero code if the job was unsuccessful")
	_ = viper.BindPFlag("await.timeout", cmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("await.severity", cmd.Flags().Lookup("severity"))
	_ = viper.BindPFlag("await.echo", cmd.Flags().Lookup("echo"))
	_ = viper.BindPFlag("await.fail", cmd.Flags().Lookup("fail"))
	return cmd
}

func runAwait(cmd *cobra.Command, args []string) error {
	echo := viper.GetBool("await.echo")
	fail := viper.GetBool("await.fail")

	severity, err := schema.ParseSeverity(viper.GetString("await.severity"))
	if err != nil {
		return finish(nil, err, echo, fail)
	}
	res, err := newClient().WaitForJob(cmd.Context(), args[0], api.WaitOptions{
		Severity: severity,
		Timeout:  time.Duration(viper.GetInt("await.timeout")) * time.Second,
		Fail:     fail,
	})
	return finish(res, err, echo, fail)
}
