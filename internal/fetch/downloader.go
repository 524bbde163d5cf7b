package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/aleya-dev/alpaca/internal/models"
	"github.com/sirupsen/logrus"
)

// Downloader fetches source files over HTTP into a destination
// directory. Already-present files are reused unless Force is set.
type Downloader struct {
	client *http.Client
	force  bool
}

// NewDownloader creates a downloader. force re-downloads files that
// already exist at the destination.
func NewDownloader(force bool) *Downloader {
	return &Downloader{client: &http.Client{}, force: force}
}

// IsURL reports whether source looks like a downloadable URL rather
// than a filesystem path.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Download fetches rawURL into destDir and returns the path of the
// downloaded file. The file is written to a temporary name and renamed
// into place so a partial download never masquerades as a complete one.
func (d *Downloader) Download(ctx context.Context, rawURL, destDir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &models.AlpacaError{Type: models.ErrDownload, Subject: rawURL, Err: err}
	}

	destPath := filepath.Join(destDir, path.Base(u.Path))

	if !d.force {
		if _, err := os.Stat(destPath); err == nil {
			logrus.Debugf("Reusing previously downloaded %s", destPath)
			return destPath, nil
		}
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", &models.AlpacaError{Type: models.ErrFileOp, Subject: destDir, Err: err}
	}

	logrus.Infof("Downloading %s", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &models.AlpacaError{Type: models.ErrDownload, Subject: rawURL, Err: err}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", &models.AlpacaError{Type: models.ErrDownload, Subject: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &models.AlpacaError{
			Type:    models.ErrDownload,
			Subject: rawURL,
			Err:     fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	tmpPath := destPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return "", &models.AlpacaError{Type: models.ErrFileOp, Subject: tmpPath, Err: err}
	}

	_, err = io.Copy(out, resp.Body)
	out.Close()
	if err != nil {
		os.Remove(tmpPath)
		return "", &models.AlpacaError{Type: models.ErrDownload, Subject: rawURL, Err: err}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", &models.AlpacaError{Type: models.ErrFileOp, Subject: destPath, Err: err}
	}

	return destPath, nil
}
