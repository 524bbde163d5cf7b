package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleya-dev/alpaca/internal/utils"
	"github.com/sirupsen/logrus"
)

const fileInfoName = ".file_info"

// Metadata files that describe the package rather than belong to it.
var fileInfoIgnoreList = map[string]bool{
	fileInfoName:    true,
	".hash":         true,
	".package_info": true,
}

// WriteFileInfo writes a .file_info manifest into dir: one line per
// file holding its permission bits, sha256 digest, size and name.
func WriteFileInfo(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("path %q is not a directory", dir)
	}

	target := filepath.Join(dir, fileInfoName)
	logrus.Infof("Writing file info to %s", target)

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() || fileInfoIgnoreList[info.Name()] {
			return nil
		}

		digest, err := utils.FileSHA256(path)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(out, "%03o %s %d %s\n",
			info.Mode().Perm(), digest, info.Size(), info.Name())
		return err
	})
	if err != nil {
		return err
	}

	return out.Sync()
}
