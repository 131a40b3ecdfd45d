// Package repositories defines persistence contracts for the domain layer.
package repositories

import (
	"context"

	"github.com/rewintool/rewin/internal/domain/entities"
)

// InventoryRepository loads the inventoried software list produced by the
// scanner on the source machine.
type InventoryRepository interface {
	// ListSoftware returns all inventoried entries in package order,
	// desktop software first, then store apps.
	ListSoftware(ctx context.Context) ([]entities.SoftwareEntry, error)
}
