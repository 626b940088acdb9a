package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <uuid>",
		Short: "Cancel a queued or running job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := newClient().CancelJob(cmd.Context(), args[0])
			return finish(res, err, viper.GetBool("cancel.echo"), true)
		},
	}

	cmd.Flags().Bool("echo", true, "Echo the response as JSON")
	_ = viper.BindPFlag("cancel.echo", cmd.Flags().Lookup("echo"))
	return cmd
}
