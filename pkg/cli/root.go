package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ethiack/job-manager/internal/logger"
)

var (
	Version = "0.1.0"
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "job-manager",
		Short: "Manage security scan jobs on Ethiack's public API",
		Long: "Ethiack job manager: submit security scan jobs, poll for completion, " +
			"and retrieve results.\n\n" +
			"Credentials are read from the ETHIACK_API_KEY and ETHIACK_API_SECRET " +
			"environment variables.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.Setup(logger.LevelFromVerbosity(viper.GetInt("verbose")),
				viper.GetBool("log-json"), "")
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON lines")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log-json", rootCmd.PersistentFlags().Lookup("log-json"))

	// Environment variable support (ETHIACK_API_KEY, etc.)
	viper.SetEnvPrefix("ETHIACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Subcommands
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLaunchCmd())
	rootCmd.AddCommand(newCancelCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newSuccessCmd())
	rootCmd.AddCommand(newAwaitCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
