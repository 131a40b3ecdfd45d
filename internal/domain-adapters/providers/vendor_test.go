package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/rewintool/rewin/internal/domain/entities"
	"github.com/rewintool/rewin/internal/domain/services"
)

func TestVendorPageProviderKnownPublisher(t *testing.T) {
	provider := NewVendorPageProvider(services.NewVendorTable(services.DefaultVendorPages()...))

	entry := entities.SoftwareEntry{Name: "Photoshop 2024", Publisher: "Adobe Inc."}
	result := provider.Attempt(context.Background(), entry, entities.ArchX64)

	if !result.Found {
		t.Fatalf("terminal provider must always succeed, note: %s", result.Note)
	}
	if result.URL != "https://www.adobe.com/downloads.html" {
		t.Errorf("URL = %q", result.URL)
	}
	if result.Source != entities.SourceVendor {
		t.Errorf("Source = %q", result.Source)
	}
	if result.Verified {
		t.Error("vendor pages are unverified pointers")
	}
}

func TestVendorPageProviderUnknownPublisher(t *testing.T) {
	provider := NewVendorPageProvider(services.NewVendorTable(services.DefaultVendorPages()...))

	entry := entities.SoftwareEntry{Name: "Obscure Tool 2.1", Publisher: "Obscure Vendor"}
	result := provider.Attempt(context.Background(), entry, entities.ArchX64)

	if !result.Found {
		t.Fatalf("terminal provider must always succeed, note: %s", result.Note)
	}
	if result.Source != entities.SourceSearchEngine {
		t.Errorf("Source = %q", result.Source)
	}
	if result.Verified {
		t.Error("search links are unverified pointers")
	}
	if !strings.HasPrefix(result.URL, "https://www.google.com/search?q=") {
		t.Fatalf("URL = %q", result.URL)
	}
	for _, term := range []string{"Obscure+Vendor", "Obscure+Tool", "x64", "download"} {
		if !strings.Contains(result.URL, term) {
			t.Errorf("search URL missing %q: %s", term, result.URL)
		}
	}
}

func TestVendorPageProviderEmptyEntry(t *testing.T) {
	// Even an entry with nothing usable still gets a search link.
	provider := NewVendorPageProvider(services.NewVendorTable())

	result := provider.Attempt(context.Background(), entities.SoftwareEntry{}, entities.ArchX64)
	if !result.Found {
		t.Fatal("terminal provider must always succeed")
	}
	if result.Source != entities.SourceSearchEngine {
		t.Errorf("Source = %q", result.Source)
	}
}
