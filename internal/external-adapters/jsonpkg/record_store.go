package jsonpkg

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rewintool/rewin/internal/domain/entities"
)

// jsonRecord is the wire shape of a resolution record
type jsonRecord struct {
	SoftwareName string   `json:"software_name"`
	Version      string   `json:"version,omitempty"`
	Publisher    string   `json:"publisher,omitempty"`
	Architecture string   `json:"architecture"`
	Status       string   `json:"status"`
	URL          string   `json:"url,omitempty"`
	SignatureURL string   `json:"signature_url,omitempty"`
	Source       string   `json:"source,omitempty"`
	Verified     bool     `json:"verified"`
	Notes        []string `json:"notes,omitempty"`
}

// RecordStore persists resolution record sets so the report and download
// commands can run on a previous resolve run's output.
type RecordStore struct{}

// NewRecordStore creates a record store
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Save writes the record set to path as indented JSON
func (s *RecordStore) Save(path string, records []entities.ResolutionRecord) error {
	out := make([]jsonRecord, len(records))
	for i, r := range records {
		out[i] = jsonRecord{
			SoftwareName: r.SoftwareName,
			Version:      r.Version,
			Publisher:    r.Publisher,
			Architecture: r.Architecture,
			Status:       string(r.Status),
			URL:          r.URL,
			SignatureURL: r.SignatureURL,
			Source:       string(r.Source),
			Verified:     r.Verified,
			Notes:        r.Notes,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// Load reads a record set previously written by Save
func (s *RecordStore) Load(path string) ([]entities.ResolutionRecord, error) {
	//nolint:gosec // G304: records path comes from a CLI flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	var in []jsonRecord
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}

	records := make([]entities.ResolutionRecord, len(in))
	for i, r := range in {
		records[i] = entities.ResolutionRecord{
			SoftwareName: r.SoftwareName,
			Version:      r.Version,
			Publisher:    r.Publisher,
			Architecture: r.Architecture,
			Status:       entities.Status(r.Status),
			URL:          r.URL,
			SignatureURL: r.SignatureURL,
			Source:       entities.Source(r.Source),
			Verified:     r.Verified,
			Notes:        r.Notes,
		}
	}
	return records, nil
}
