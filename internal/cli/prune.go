package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewPruneCmd creates the prune command
func NewPruneCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Clean up all build intermediates",
		Long: `Removes sources and build intermediates from the workspace. This
does not remove installed packages or anything from the repository
cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logrus.Info("Pruning build intermediates...")

			if err := os.RemoveAll(cfg.WorkspaceBasePath()); err != nil {
				return err
			}

			if all {
				logrus.Info("Pruning local binary cache...")
				if err := os.RemoveAll(cfg.BinaryCachePath()); err != nil {
					return err
				}
			}

			logrus.Info("Pruning complete")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also clean up the local binary cache")

	return cmd
}
