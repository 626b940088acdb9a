package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check <url>",
		Short:   "Check if a URL is valid and a job can be submitted",
		Example: "job-manager check https://example.com",
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}

	cmd.Flags().Bool("echo", true, "Echo the response as JSON")
	cmd.Flags().Bool("fail", true, "Exit with nonzero code if the check fails")
	_ = viper.BindPFlag("check.echo", cmd.Flags().Lookup("echo"))
	_ = viper.BindPFlag("check.fail", cmd.Flags().Lookup("fail"))
	addServiceFlags(cmd, "check")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	echo := viper.GetBool("check.echo")
	fail := viper.GetBool("check.fail")

	svc, err := serviceFromFlags("check", args[0])
	if err != nil {
		return finish(nil, err, echo, fail)
	}
	res, err := newClient().Check(cmd.Context(), svc)
	return finish(res, err, echo, fail)
}
