package cli

import (
	"github.com/aleya-dev/alpaca/internal/builder"
	"github.com/spf13/cobra"
)

// NewFileInfoCmd creates the fileinfo command
func NewFileInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fileinfo <package-dir>",
		Short: "Generate a .file_info manifest for a package directory",
		Long: `Writes a .file_info file into the given package directory listing
the permissions, sha256 digest, size and name of every file. Recipes
invoke this during their packaging phase.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			return builder.WriteFileInfo(args[0])
		},
	}

	return cmd
}
