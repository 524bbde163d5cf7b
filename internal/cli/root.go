package cli

import (
	"github.com/aleya-dev/alpaca/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "alpaca",
		Short:   "AlpaCA - The Aleya Package Configuration Assistant",
		Version: version,
		Long: `Alpaca is a source-based package manager. It keeps a local cache
of recipe repositories, resolves package recipes into build metadata
and builds binary packages from them.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")

	// Add subcommands
	rootCmd.AddCommand(NewUpdateCmd())
	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewFileInfoCmd())
	rootCmd.AddCommand(NewPruneCmd())

	return rootCmd
}

// loadConfig loads the configuration honoring the global --config and
// --verbose flags.
func loadConfig(cmd *cobra.Command) (config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return config.Configuration{}, err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	return cfg, nil
}
