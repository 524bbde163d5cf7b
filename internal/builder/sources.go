package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleya-dev/alpaca/internal/fetch"
	"github.com/aleya-dev/alpaca/internal/models"
	"github.com/aleya-dev/alpaca/internal/utils"
	"github.com/sirupsen/logrus"
)

// acquireSources downloads or copies every declared source file into
// the workspace source directory, verifies its checksum, extracts tar
// archives and finally runs the recipe's handle_sources function.
func (b *Builder) acquireSources(ctx context.Context, desc *models.Description, ws workspace) error {
	logrus.Info("Handling sources...")

	downloader := fetch.NewDownloader(b.cfg.ForceDownload)
	recipeDir := filepath.Dir(desc.RecipePath)

	for i, source := range desc.Sources {
		path, err := b.fetchSource(ctx, downloader, source, recipeDir, ws.sourceDir)
		if err != nil {
			return err
		}

		if err := utils.VerifyFileSHA256(path, desc.SHA256Sums[i]); err != nil {
			return &models.AlpacaError{Type: models.ErrChecksumMismatch, Subject: source, Err: err}
		}

		if utils.IsTarArchive(path) {
			logrus.Infof("Extracting file %s...", filepath.Base(path))
			if err := utils.ExtractTar(path, ws.sourceDir); err != nil {
				return &models.AlpacaError{Type: models.ErrFileOp, Subject: path, Err: err}
			}
		}
	}

	return b.callFunction(ctx, desc, "handle_sources", ws.sourceDir, ws)
}

// fetchSource resolves a single source entry: a URL is downloaded, a
// filesystem path is copied, a bare name is looked up relative to the
// recipe directory.
func (b *Builder) fetchSource(ctx context.Context, downloader *fetch.Downloader, source, recipeDir, destDir string) (string, error) {
	if fetch.IsURL(source) {
		logrus.Debugf("Source %s is a URL, downloading", source)
		return downloader.Download(ctx, source, destDir)
	}

	candidates := []string{source, filepath.Join(recipeDir, source)}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			logrus.Debugf("Source %s found at %s, copying", source, candidate)
			dest := filepath.Join(destDir, filepath.Base(candidate))
			if err := utils.CopyFile(candidate, dest); err != nil {
				return "", &models.AlpacaError{Type: models.ErrFileOp, Subject: candidate, Err: err}
			}
			return dest, nil
		}
	}

	return "", &models.AlpacaError{
		Type:    models.ErrFileOp,
		Subject: source,
		Err:     fmt.Errorf("source not found as URL, path or file relative to %s", recipeDir),
	}
}
