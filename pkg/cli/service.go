package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ethiack/job-manager/internal/schema"
)

// addServiceFlags registers the optional service descriptor flags shared by
// check and launch, namespaced per command.
func addServiceFlags(cmd *cobra.Command, ns string) {
	cmd.Flags().Int("beacon-id", 0, "Beacon ID of the service")
	cmd.Flags().String("event-slug", "", "Event slug of the service")
	_ = viper.BindPFlag(ns+".beacon-id", cmd.Flags().Lookup("beacon-id"))
	_ = viper.BindPFlag(ns+".event-slug", cmd.Flags().Lookup("event-slug"))
}

// serviceFromFlags builds a validated Service from the URL argument and the
// namespaced flags.
func serviceFromFlags(ns, url string) (schema.Service, error) {
	var opts []schema.ServiceOption
	if id := viper.GetInt(ns + ".beacon-id"); id != 0 {
		opts = append(opts, schema.WithBeaconID(id))
	}
	if slug := viper.GetString(ns + ".event-slug"); slug != "" {
		opts = append(opts, schema.WithEventSlug(slug))
	}
	return schema.NewService(url, opts...)
}
