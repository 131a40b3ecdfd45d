package providers

import (
	"context"
	"fmt"

	"github.com/rewintool/rewin/internal/domain/entities"
	"github.com/rewintool/rewin/internal/domain/services"
)

// StaticMapProvider resolves entries against the curated mapping table.
// First in the chain: a hit costs zero external calls and is always
// verified, since the table only contains identifiers known to exist.
type StaticMapProvider struct {
	table *services.MappingTable
}

// NewStaticMapProvider creates a provider over the given table
func NewStaticMapProvider(table *services.MappingTable) *StaticMapProvider {
	return &StaticMapProvider{table: table}
}

// Name identifies the provider in diagnostics
func (p *StaticMapProvider) Name() string { return "static-map" }

// Attempt looks the entry up in the mapping table
func (p *StaticMapProvider) Attempt(_ context.Context, entry entities.SoftwareEntry, _ entities.Architecture) Result {
	rule, ok := p.table.Lookup(entry.Name)
	if !ok {
		return notFound("no static mapping")
	}

	return Result{
		Found:    true,
		URL:      IdentifierURL(rule.Ecosystem, rule.ID),
		Source:   entities.SourceStaticMap,
		Verified: true,
		Note:     fmt.Sprintf("static mapping %q -> %s (%s)", rule.Pattern, rule.ID, rule.Ecosystem),
	}
}

// IdentifierURL renders a package identifier as a resolvable reference in
// the scheme the install phase understands (not an HTTP URL).
func IdentifierURL(eco services.Ecosystem, id string) string {
	if eco == services.EcosystemChocolatey {
		return "choco://install/" + id
	}
	return "winget://install/" + id
}
