// Package gpg provides GPG signature verification for downloaded installers.
package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier checks detached signatures (the .asc assets some release
// publishers ship next to their installers) against an imported keyring.
// Uses ProtonMail's go-crypto, the maintained fork of
// golang.org/x/crypto/openpgp.
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a new GPG verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ImportKeys imports GPG keys by fingerprint from public keyservers,
// trying each server until one succeeds.
func (v *Verifier) ImportKeys(ctx context.Context, keyIDs []string) error {
	if len(keyIDs) == 0 {
		return fmt.Errorf("no key IDs provided")
	}

	keyservers := []string{
		"https://keys.openpgp.org",
		"https://keyserver.ubuntu.com",
		"https://pgp.mit.edu",
	}

	for _, keyID := range keyIDs {
		if keyID == "" {
			continue
		}

		var lastErr error
		imported := false

		for _, keyserver := range keyservers {
			urls := []string{
				fmt.Sprintf("%s/vks/v1/by-fingerprint/%s", keyserver, keyID),
				fmt.Sprintf("%s/pks/lookup?op=get&search=0x%s", keyserver, keyID),
			}

			for _, keyURL := range urls {
				entities, err := v.fetchKeyring(ctx, keyURL)
				if err != nil {
					lastErr = err
					continue
				}

				// Verify the fetched key actually matches the requested
				// fingerprint before trusting it
				validKey := false
				for _, entity := range entities {
					fingerprint := fmt.Sprintf("%X", entity.PrimaryKey.Fingerprint)
					if fingerprint == keyID || (len(fingerprint) >= 16 && fingerprint[len(fingerprint)-16:] == keyID) {
						validKey = true
					}
				}
				if !validKey {
					lastErr = fmt.Errorf("no keys matching fingerprint %s", keyID)
					continue
				}

				v.keyring = append(v.keyring, entities...)
				imported = true
				break
			}

			if imported {
				break
			}
		}

		if !imported {
			return fmt.Errorf("failed to import key %s from all keyservers: %w", keyID, lastErr)
		}
	}

	return nil
}

// ImportKeyFromFile imports a GPG key from a local file, armored or binary
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return fmt.Errorf("failed to reset file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// HasKeys reports whether any keys have been imported
func (v *Verifier) HasKeys() bool {
	return len(v.keyring) > 0
}

// VerifyDetached fetches a detached signature from sigURL and verifies it
// against the downloaded installer at filePath.
func (v *Verifier) VerifyDetached(ctx context.Context, filePath, sigURL string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported")
	}

	sig, err := v.fetchSignature(ctx, sigURL)
	if err != nil {
		return err
	}

	//nolint:gosec // G304: filePath is the file we just downloaded
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	// Armored first, binary as fallback
	if _, err := openpgp.CheckArmoredDetachedSignature(v.keyring, f, bytes.NewReader(sig), nil); err == nil {
		return nil
	}
	if _, seekErr := f.Seek(0, 0); seekErr != nil {
		return fmt.Errorf("failed to reset file: %w", seekErr)
	}
	if _, err := openpgp.CheckDetachedSignature(v.keyring, f, bytes.NewReader(sig), nil); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

func (v *Verifier) fetchKeyring(ctx context.Context, keyURL string) (openpgp.EntityList, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", keyURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keyserver returned status %d", resp.StatusCode)
	}

	entities, err := openpgp.ReadArmoredKeyRing(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("no keys found in response")
	}
	return entities, nil
}

func (v *Verifier) fetchSignature(ctx context.Context, sigURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", sigURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download signature: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("signature download failed with status %d", resp.StatusCode)
	}

	// Detached signatures are tiny; cap the read at 1MB
	sig, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read signature: %w", err)
	}
	return sig, nil
}
