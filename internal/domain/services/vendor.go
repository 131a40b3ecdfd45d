package services

import "strings"

// VendorPage points at a publisher's official download page
type VendorPage struct {
	Publisher string
	URL       string
}

// VendorTable is the curated publisher -> official-download-page map used
// by the terminal fallback. Like the mapping table it is ordered,
// first-match, read-only after construction, and never fails.
type VendorTable struct {
	pages []VendorPage
}

// NewVendorTable builds a table from pages in the given order
func NewVendorTable(pages ...VendorPage) *VendorTable {
	return &VendorTable{pages: pages}
}

// Lookup returns the first page whose publisher pattern is contained in
// the entry's publisher.
func (t *VendorTable) Lookup(publisher string) (VendorPage, bool) {
	normalized := NormalizeName(publisher)
	if normalized == "" {
		return VendorPage{}, false
	}

	for _, page := range t.pages {
		if strings.Contains(normalized, NormalizeName(page.Publisher)) {
			return page, true
		}
	}
	return VendorPage{}, false
}

// Len returns the number of pages in the table
func (t *VendorTable) Len() int {
	return len(t.pages)
}

// DefaultVendorPages is the curated set of well-known publishers
func DefaultVendorPages() []VendorPage {
	return []VendorPage{
		{Publisher: "Adobe", URL: "https://www.adobe.com/downloads.html"},
		{Publisher: "Mozilla", URL: "https://www.mozilla.org/firefox/download/"},
		{Publisher: "Google", URL: "https://www.google.com/chrome/"},
		{Publisher: "Microsoft", URL: "https://www.microsoft.com/download"},
		{Publisher: "Oracle", URL: "https://www.oracle.com/downloads/"},
		{Publisher: "NVIDIA", URL: "https://www.nvidia.com/drivers/"},
		{Publisher: "Advanced Micro Devices", URL: "https://www.amd.com/en/support"},
		{Publisher: "Intel", URL: "https://www.intel.com/content/www/us/en/download-center/home.html"},
		{Publisher: "Logitech", URL: "https://support.logi.com/hc/en-us/articles/360025141274"},
		{Publisher: "Razer", URL: "https://www.razer.com/downloads"},
		{Publisher: "Corsair", URL: "https://www.corsair.com/us/en/downloads"},
		{Publisher: "JetBrains", URL: "https://www.jetbrains.com/products/"},
		{Publisher: "Valve", URL: "https://store.steampowered.com/about/"},
		{Publisher: "Epic Games", URL: "https://store.epicgames.com/en-US/download"},
		{Publisher: "TechSmith", URL: "https://www.techsmith.com/download.html"},
		{Publisher: "Piriform", URL: "https://www.ccleaner.com/ccleaner/download"},
		{Publisher: "RARLAB", URL: "https://www.win-rar.com/download.html"},
		{Publisher: "VideoLAN", URL: "https://www.videolan.org/vlc/"},
	}
}
