package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ethiack/job-manager/internal/schema"
)

func newSuccessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "success <uuid>",
		Short:   "Show the success of a job",
		Example: "job-manager success 1b6d8f7e --severity high",
		Args:    cobra.ExactArgs(1),
		RunE:    runSuccess,
	}

	cmd.Flags().String("severity", schema.SeverityMedium.String(),
		"Minimum severity level that should fail: "+strings.Join(schema.SeverityNames(), "|"))
	cmd.Flags().Bool("echo", true, "Echo the response as JSON")
	cmd.Flags().Bool("fail", true, "Exit with nonzero code if the job was unsuccessful")
	_ = viper.BindPFlag("success.severity", cmd.Flags().Lookup("severity"))
	_ = viper.BindPFlag("success.echo", cmd.Flags().Lookup("echo"))
	_ = viper.BindPFlag("success.fail", cmd.Flags().Lookup("fail"))
	return cmd
}

func runSuccess(cmd *cobra.Command, args []string) error {
	echo := viper.GetBool("success.echo")
	fail := viper.GetBool("success.fail")

	severity, err := schema.ParseSeverity(viper.GetString("success.severity"))
	if err != nil {
		return finish(nil, err, echo, fail)
	}
	res, err := newClient().JobSuccess(cmd.Context(), args[0], severity, fail)
	return finish(res, err, echo, fail)
}
