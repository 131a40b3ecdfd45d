package services

import (
	"strings"
	"testing"
	"time"

	"github.com/rewintool/rewin/internal/domain/entities"
)

func pinnedGenerator() *ReportGenerator {
	return &ReportGenerator{
		Now: func() time.Time {
			return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
		},
	}
}

func TestRenderGroupsByStatus(t *testing.T) {
	records := []entities.ResolutionRecord{
		{
			SoftwareName: "Google Chrome",
			Version:      "120.0",
			Publisher:    "Google LLC",
			Architecture: "x64",
			Status:       entities.StatusResolved,
			URL:          "winget://install/Google.Chrome",
			Source:       entities.SourceStaticMap,
			Verified:     true,
		},
		{
			SoftwareName: "Obscure Tool",
			Publisher:    "Obscure Vendor",
			Architecture: "x64",
			Status:       entities.StatusManual,
			URL:          "https://www.google.com/search?q=Obscure+Vendor+Obscure+Tool+x64+download",
			Source:       entities.SourceSearchEngine,
			Notes:        []string{"winget: no close match"},
		},
		{
			SoftwareName: "Broken Entry",
			Architecture: "x64",
			Status:       entities.StatusUnresolved,
		},
	}

	out := pinnedGenerator().Render(records)

	if !strings.Contains(out, "Generated: 2026-01-15T12:00:00Z") {
		t.Error("missing pinned generation timestamp")
	}
	if !strings.Contains(out, "Total: 3 | Ready to Download: 1 | Manual Search Required: 1 | Unable to Find: 1") {
		t.Errorf("bad counts line in:\n%s", out)
	}

	for _, section := range []string{
		"## Ready to Download (1)",
		"## Manual Search Required (1)",
		"## Unable to Find (1)",
	} {
		if !strings.Contains(out, section) {
			t.Errorf("missing section %q", section)
		}
	}

	// Each record gets its own heading.
	for _, heading := range []string{
		"### Google Chrome",
		"### Obscure Tool",
		"### Broken Entry",
	} {
		if !strings.Contains(out, heading) {
			t.Errorf("missing heading %q", heading)
		}
	}

	if !strings.Contains(out, "[winget://install/Google.Chrome](winget://install/Google.Chrome)") {
		t.Error("URL not rendered as a markdown link")
	}
	if !strings.Contains(out, "  - winget: no close match") {
		t.Error("provider note not rendered")
	}
}

func TestRenderDeterministic(t *testing.T) {
	records := []entities.ResolutionRecord{
		{SoftwareName: "A", Architecture: "x64", Status: entities.StatusResolved, URL: "https://a.example.com", Verified: true},
		{SoftwareName: "B", Architecture: "x86", Status: entities.StatusManual, URL: "https://b.example.com"},
	}

	gen := pinnedGenerator()
	first := gen.Render(records)
	second := gen.Render(records)
	if first != second {
		t.Error("rendering the same records twice produced different output")
	}
}

func TestRenderEmpty(t *testing.T) {
	out := pinnedGenerator().Render(nil)

	if !strings.Contains(out, "Total: 0 | Ready to Download: 0 | Manual Search Required: 0 | Unable to Find: 0") {
		t.Errorf("bad counts line for empty record set:\n%s", out)
	}
	if strings.Contains(out, "### ") {
		t.Error("empty record set must not produce record headings")
	}
}
