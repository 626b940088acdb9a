package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <uuid>",
		Short: "Get information about a job, findings included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := newClient().JobInfo(cmd.Context(), args[0])
			return finish(res, err, viper.GetBool("info.echo"), true)
		},
	}

	cmd.Flags().Bool("echo", true, "Echo the response as JSON")
	_ = viper.BindPFlag("info.echo", cmd.Flags().Lookup("echo"))
	return cmd
}
