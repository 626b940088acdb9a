package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ethiack/job-manager/internal/api"
	"github.com/ethiack/job-manager/internal/schema"
)

func newLaunchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "launch <url>",
		Short:   "Launch a job",
		Example: "job-manager launch https://example.com --wait --severity high",
		Args:    cobra.ExactArgs(1),
		RunE:    runLaunch,
	}

	cmd.Flags().Bool("echo", true, "Echo the response as JSON")
	cmd.Flags().Bool("wait", false, "Wait for the job to finish")
	cmd.Flags().Int("timeout", 3600, "Maximum time to wait for the job to finish in seconds (with --wait)")
	cmd.Flags().String("severity", schema.SeverityMedium.String(),
		"Minimum severity level that should fail (with --wait): "+strings.Join(schema.SeverityNames(), "|"))
	cmd.Flags().Bool("fail", true, "Exit with nonzero code if the job was unsuccessful (with --wait)")
	_ = viper.BindPFlag("launch.echo", cmd.Flags().Lookup("echo"))
	_ = viper.BindPFlag("launch.wait", cmd.Flags().Lookup("wait"))
	_ = viper.BindPFlag("launch.timeout", cmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("launch.severity", cmd.Flags().Lookup("severity"))
	_ = viper.BindPFlag("launch.fail", cmd.Flags().Lookup("fail"))
	addServiceFlags(cmd, "launch")
	return cmd
}

func runLaunch(cmd *cobra.Command, args []string) error {
	echo := viper.GetBool("launch.echo")
	fail := viper.GetBool("launch.fail")

	svc, err := serviceFromFlags("launch", args[0])
	if err != nil {
		return finish(nil, err, echo, fail)
	}
	severity, err := schema.ParseSeverity(viper.GetString("launch.severity"))
	if err != nil {
		return finish(nil, err, echo, fail)
	}

	client := newClient()
	res, err := client.LaunchJob(cmd.Context(), svc, nil)
	if err != nil {
		return finish(nil, err, echo, fail)
	}
	if echo {
		if err := echoJSON(res); err != nil {
			return err
		}
	}
	if !viper.GetBool("launch.wait") {
		return nil
	}

	verdict, err := client.WaitForJob(cmd.Context(), res.UUID, api.WaitOptions{
		Severity: severity,
		Timeout:  time.Duration(viper.GetInt("launch.timeout")) * time.Second,
		Fail:     fail,
	})
	return finish(verdict, err, echo, fail)
}
