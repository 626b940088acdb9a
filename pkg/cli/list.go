package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().ListJobs(cmd.Context())
			return finish(res, err, viper.GetBool("list.echo"), true)
		},
	}

	cmd.Flags().Bool("echo", true, "Echo the response as JSON")
	_ = viper.BindPFlag("list.echo", cmd.Flags().Lookup("echo"))
	return cmd
}
