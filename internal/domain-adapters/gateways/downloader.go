package gateways

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// InstallerDownloader fetches resolved installer URLs to a local directory.
// Identifier references (winget://, choco://) are not downloadable and are
// rejected up front; callers install those through the package manager.
type InstallerDownloader struct {
	httpClient *http.Client
}

// NewInstallerDownloader creates a new downloader
func NewInstallerDownloader() *InstallerDownloader {
	return &InstallerDownloader{
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // installers can be large
		},
	}
}

// Downloadable reports whether a record URL is a direct HTTP(S) file
func (d *InstallerDownloader) Downloadable(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}

// Download streams the URL into outputDir and writes a .sha256 sidecar.
// The filename comes from the Content-Disposition header when the server
// sends one (vendor download links often do), otherwise from the URL path.
func (d *InstallerDownloader) Download(rawURL, outputDir string) (string, error) {
	if !d.Downloadable(rawURL) {
		return "", fmt.Errorf("not a direct download URL: %s", rawURL)
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	resp, err := d.httpClient.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	filename := filenameFor(rawURL, resp.Header.Get("Content-Disposition"))
	outputPath := filepath.Join(outputDir, filename)

	//nolint:gosec // G304: output path is derived from the user-chosen directory
	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(f, h), resp.Body); err != nil {
		//nolint:errcheck,gosec // G104: Best effort close on write error
		f.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	sum := hex.EncodeToString(h.Sum(nil))
	sidecar := fmt.Sprintf("%s  %s\n", sum, filename)
	if err := os.WriteFile(outputPath+".sha256", []byte(sidecar), 0600); err != nil {
		return "", fmt.Errorf("failed to write checksum sidecar: %w", err)
	}

	return outputPath, nil
}

// filenameFor derives a safe local filename for the download
func filenameFor(rawURL, contentDisposition string) string {
	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			if name := filepath.Base(params["filename"]); usableFilename(name) {
				return name
			}
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		if name := path.Base(u.Path); usableFilename(name) {
			return name
		}
	}

	return "installer.bin"
}

// usableFilename rejects the path sentinels filepath.Base can return;
// ".." in particular would escape the output directory.
func usableFilename(name string) bool {
	switch name {
	case "", ".", "..", "/":
		return false
	}
	return true
}
