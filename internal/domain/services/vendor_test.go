package services

import "testing"

func TestVendorTableLookup(t *testing.T) {
	table := NewVendorTable(DefaultVendorPages()...)

	tests := []struct {
		name        string
		publisher   string
		expectedURL string
		found       bool
	}{
		{
			name:        "exact publisher",
			publisher:   "Adobe",
			expectedURL: "https://www.adobe.com/downloads.html",
			found:       true,
		},
		{
			name:        "publisher with suffix",
			publisher:   "Mozilla Corporation",
			expectedURL: "https://www.mozilla.org/firefox/download/",
			found:       true,
		},
		{
			name:        "publisher with legal form",
			publisher:   "NVIDIA Corporation",
			expectedURL: "https://www.nvidia.com/drivers/",
			found:       true,
		},
		{
			name:      "unknown publisher",
			publisher: "Obscure Vendor LLC",
			found:     false,
		},
		{
			name:      "empty publisher",
			publisher: "",
			found:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, ok := table.Lookup(tt.publisher)
			if ok != tt.found {
				t.Fatalf("Lookup(%q) found = %v, want %v", tt.publisher, ok, tt.found)
			}
			if tt.found && page.URL != tt.expectedURL {
				t.Errorf("Lookup(%q).URL = %q, want %q", tt.publisher, page.URL, tt.expectedURL)
			}
		})
	}
}

func TestVendorTableOrder(t *testing.T) {
	table := NewVendorTable(
		VendorPage{Publisher: "Acme Studios", URL: "https://studios.example.com"},
		VendorPage{Publisher: "Acme", URL: "https://acme.example.com"},
	)

	page, ok := table.Lookup("Acme Studios Inc.")
	if !ok {
		t.Fatal("expected a match")
	}
	if page.URL != "https://studios.example.com" {
		t.Errorf("expected first page to win, got %q", page.URL)
	}
}
