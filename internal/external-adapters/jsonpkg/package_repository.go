// Package jsonpkg reads the migration package produced by the inventory scanner.
package jsonpkg

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rewintool/rewin/internal/domain/entities"
)

// Wire structures mirror migration_package.json exactly; the scanner owns
// this format, we only consume it.
type migrationPackage struct {
	Software  []jsonSoftware `json:"software"`
	StoreApps []jsonStoreApp `json:"store_apps"`
}

type jsonSoftware struct {
	SoftwareName  string `json:"SoftwareName"`
	Version       string `json:"Version"`
	Publisher     string `json:"Publisher"`
	InstallMethod string `json:"InstallMethod"`
	WingetID      string `json:"WingetId"`
	ChocolateyID  string `json:"ChocolateyId"`
}

type jsonStoreApp struct {
	Name              string `json:"Name"`
	Version           string `json:"Version"`
	Publisher         string `json:"Publisher"`
	PackageFamilyName string `json:"PackageFamilyName"`
}

// PackageRepository implements repositories.InventoryRepository over a
// migration_package.json file.
type PackageRepository struct {
	path string
}

// NewPackageRepository creates a repository reading the given package file
func NewPackageRepository(path string) *PackageRepository {
	return &PackageRepository{path: path}
}

// ListSoftware returns all inventoried entries in package order: desktop
// software first, then store apps folded into the same shape.
func (r *PackageRepository) ListSoftware(_ context.Context) ([]entities.SoftwareEntry, error) {
	//nolint:gosec // G304: package path comes from a CLI flag
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration package: %w", err)
	}

	// Scanner writes UTF-8 with BOM on some systems
	data = stripBOM(data)

	var pkg migrationPackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse migration package: %w", err)
	}

	entries := make([]entities.SoftwareEntry, 0, len(pkg.Software)+len(pkg.StoreApps))
	for _, s := range pkg.Software {
		entries = append(entries, entities.SoftwareEntry{
			Name:          s.SoftwareName,
			Version:       s.Version,
			Publisher:     s.Publisher,
			InstallMethod: entities.InstallMethod(s.InstallMethod),
			WingetID:      s.WingetID,
			ChocolateyID:  s.ChocolateyID,
		})
	}
	for _, a := range pkg.StoreApps {
		entries = append(entries, entities.SoftwareEntry{
			Name:              a.Name,
			Version:           a.Version,
			Publisher:         a.Publisher,
			InstallMethod:     entities.InstallMethodStore,
			PackageFamilyName: a.PackageFamilyName,
		})
	}

	return entries, nil
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
