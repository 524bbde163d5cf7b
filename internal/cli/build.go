package cli

import (
	"fmt"
	"os"

	"github.com/aleya-dev/alpaca/internal/builder"
	"github.com/aleya-dev/alpaca/internal/config"
	"github.com/aleya-dev/alpaca/internal/recipe"
	"github.com/aleya-dev/alpaca/internal/repository"
	"github.com/aleya-dev/alpaca/internal/signer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	var (
		keep          bool
		noCheck       bool
		workDir       string
		deleteWorkDir bool
		forceDownload bool
		outputDir     string
	)

	cmd := &cobra.Command{
		Use:   "build <package>",
		Short: "Build a package from its recipe",
		Long: `Builds a package from source. The package argument is a package
name (e.g. binutils or binutils/2.44), or a path to a recipe file
(e.g. ./binutils-2.44-1.recipe).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Geteuid() == 0 {
				return fmt.Errorf("running 'build' as root is not allowed, please run as a normal user")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cfg.KeepWorkspaceOnFailure = keep
			cfg.SkipPackageCheck = noCheck
			cfg.WorkspaceOverride = workDir
			cfg.DeleteWorkspace = deleteWorkDir
			cfg.ForceDownload = forceDownload
			cfg.OutputDir = outputDir

			recipePath, err := resolveRecipe(cfg, args[0])
			if err != nil {
				return err
			}

			logrus.Infof("Building package from recipe %s", recipePath)

			loader := recipe.NewLoader(cfg)

			atom, err := loader.ProbeIdentity(cmd.Context(), recipePath)
			if err != nil {
				return err
			}

			desc, err := loader.Load(cmd.Context(), atom, recipePath)
			if err != nil {
				return err
			}

			var sig signer.Signer
			if cfg.GPGKeyPath != "" {
				if sig, err = signer.NewGPGSigner(cfg.GPGKeyPath, cfg.GPGPassphrase); err != nil {
					return err
				}
				logrus.Info("GPG signer initialized")
			}

			archive, err := builder.New(cfg, sig).Build(cmd.Context(), desc)
			if err != nil {
				return err
			}

			logrus.Infof("Package built: %s", archive)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&keep, "keep", "k", false, "Keep the build directory if the build fails")
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "Skip the package check phase")
	cmd.Flags().StringVarP(&workDir, "workdir", "w", "", "Working directory for the build (must not exist)")
	cmd.Flags().BoolVarP(&deleteWorkDir, "delete-workdir", "d", false, "Delete the working directory if it exists")
	cmd.Flags().BoolVar(&forceDownload, "download", false, "Force redownloading all source files")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory where to place the built package")

	return cmd
}

// resolveRecipe maps a package specifier to a recipe path. Direct paths
// work without any configured repositories; names go through the finder
// over the repository cache.
func resolveRecipe(cfg config.Configuration, spec string) (string, error) {
	if info, err := os.Stat(spec); err == nil && !info.IsDir() {
		return spec, nil
	}

	cache := repository.NewCache(cfg.RepositoryCachePath())

	finder, err := repository.NewFinder(cfg, cache)
	if err != nil {
		return "", err
	}

	return finder.FindRecipe(spec)
}
