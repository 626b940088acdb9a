package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <uuid>",
		Short: "Show the status of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := newClient().JobStatus(cmd.Context(), args[0])
			return finish(res, err, viper.GetBool("status.echo"), true)
		},
	}

	cmd.Flags().Bool("echo", true, "Echo the response as JSON")
	_ = viper.BindPFlag("status.echo", cmd.Flags().Lookup("echo"))
	return cmd
}
