package cli

import (
	"github.com/aleya-dev/alpaca/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewUpdateCmd creates the update command
func NewUpdateCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the local cache of recipe repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cache := repository.NewCache(cfg.RepositoryCachePath())
			if err := cache.EnsureRoot(); err != nil {
				return err
			}

			logrus.Info("Updating package lists...")

			for _, declaration := range cfg.Repositories {
				src, err := repository.ParseSource(declaration)
				if err != nil {
					return err
				}

				if reset {
					err = cache.Reset(cmd.Context(), src)
				} else {
					err = cache.Update(cmd.Context(), src)
				}
				if err != nil {
					return err
				}
			}

			logrus.Info("Package lists updated")
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Discard the cached repositories and clone them afresh")

	return cmd
}
