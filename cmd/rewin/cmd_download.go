package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rewintool/rewin/internal/domain-adapters/gateways"
	"github.com/rewintool/rewin/internal/domain/entities"
	"github.com/rewintool/rewin/internal/external-adapters/gpg"
	"github.com/rewintool/rewin/internal/external-adapters/jsonpkg"
)

// stringList collects a repeatable flag value
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runDownload(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	var gpgKeys stringList
	var (
		recordsPath = fs.String("records", "resolution_records.json", "Path to a saved record set")
		outputDir   = fs.String("output-dir", "downloads", "Directory for downloaded installers")
		gpgKeyFile  = fs.String("gpg-key-file", "", "Local GPG public key file for signature verification")
	)
	fs.Var(&gpgKeys, "gpg-key", "GPG key fingerprint for signature verification (repeatable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rewin download [options]

Download every Resolved record with a direct URL into the output
directory, writing a .sha256 sidecar per file. Identifier references
(winget://, choco://) are skipped; install those through the package
manager instead. When --gpg-key is given, records carrying a detached
signature URL are verified after download.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  rewin download --records resolution_records.json --output-dir downloads
  rewin download --gpg-key 0123456789ABCDEF
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	records, err := jsonpkg.NewRecordStore().Load(*recordsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading records: %v\n", err)
		os.Exit(1)
	}

	var verifier *gpg.Verifier
	if len(gpgKeys) > 0 || *gpgKeyFile != "" {
		verifier = gpg.NewVerifier()
		if len(gpgKeys) > 0 {
			if err := verifier.ImportKeys(ctx, gpgKeys); err != nil {
				fmt.Fprintf(os.Stderr, "Error importing GPG keys: %v\n", err)
				os.Exit(1)
			}
		}
		if *gpgKeyFile != "" {
			if err := verifier.ImportKeyFromFile(*gpgKeyFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error importing GPG key file: %v\n", err)
				os.Exit(1)
			}
		}
	}

	downloader := gateways.NewInstallerDownloader()
	var downloaded, skipped, failed int

	for _, r := range records {
		if r.Status != entities.StatusResolved || !downloader.Downloadable(r.URL) {
			skipped++
			continue
		}

		select {
		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "Interrupted: %d downloaded, %d skipped, %d failed\n", downloaded, skipped, failed)
			os.Exit(1)
		default:
		}

		path, err := downloader.Download(r.URL, *outputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.SoftwareName, err)
			failed++
			continue
		}

		if verifier != nil && r.SignatureURL != "" {
			if err := verifier.VerifyDetached(ctx, path, r.SignatureURL); err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: signature check failed: %v\n", r.SoftwareName, err)
				failed++
				continue
			}
			fmt.Printf("✓ %s -> %s (signature verified)\n", r.SoftwareName, path)
		} else {
			fmt.Printf("✓ %s -> %s\n", r.SoftwareName, path)
		}
		downloaded++
	}

	fmt.Printf("Done: %d downloaded, %d skipped, %d failed\n", downloaded, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
