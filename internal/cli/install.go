package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/aleya-dev/alpaca/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command
func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <package-file>",
		Short: "Install a built binary package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Geteuid() != 0 {
				return fmt.Errorf("running 'install' requires root privileges, please run as root")
			}

			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			packagePath := args[0]

			if !strings.HasSuffix(packagePath, config.PackageFileExtension) {
				return fmt.Errorf("invalid package file %s, expected a file with extension %q",
					packagePath, config.PackageFileExtension)
			}

			if _, err := os.Stat(packagePath); err != nil {
				return fmt.Errorf("package file %s does not exist", packagePath)
			}

			logrus.Infof("Validated package %s", packagePath)

			// TODO: unpack the archive onto the root filesystem and
			// record its .file_info manifest in the package database.
			return nil
		},
	}

	return cmd
}
