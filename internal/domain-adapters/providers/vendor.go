package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rewintool/rewin/internal/domain/entities"
	"github.com/rewintool/rewin/internal/domain/services"
)

// VendorPageProvider is the terminal fallback. A known publisher yields its
// official download page; anyone else gets a synthesized search-engine
// query. Both outcomes are unverified pointers requiring manual action, and
// the second branch cannot fail, which is what guarantees the chain always
// ends with a result.
type VendorPageProvider struct {
	table *services.VendorTable
}

// NewVendorPageProvider creates a provider over the given vendor table
func NewVendorPageProvider(table *services.VendorTable) *VendorPageProvider {
	return &VendorPageProvider{table: table}
}

// Name identifies the provider in diagnostics
func (p *VendorPageProvider) Name() string { return "vendor" }

// Attempt always succeeds with either a vendor page or a search link
func (p *VendorPageProvider) Attempt(_ context.Context, entry entities.SoftwareEntry, arch entities.Architecture) Result {
	if page, ok := p.table.Lookup(entry.Publisher); ok {
		return Result{
			Found:  true,
			URL:    page.URL,
			Source: entities.SourceVendor,
			Note:   fmt.Sprintf("known publisher %q, official download page", entry.Publisher),
		}
	}

	terms := []string{entry.Publisher, services.CleanName(entry.Name), arch.Name, "download"}
	query := strings.Join(strings.Fields(strings.Join(terms, " ")), " ")

	return Result{
		Found:  true,
		URL:    "https://www.google.com/search?q=" + url.QueryEscape(query),
		Source: entities.SourceSearchEngine,
		Note:   "publisher not in vendor table, synthesized search query",
	}
}
