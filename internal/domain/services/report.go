package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rewintool/rewin/internal/domain/entities"
)

// ReportGenerator renders a frozen record set into the grouped markdown
// report. Rendering is pure: the same record set always produces the same
// body, with the single generation header being the only line derived from
// the clock.
type ReportGenerator struct {
	// Now supplies the generation timestamp; tests pin it
	Now func() time.Time
}

// NewReportGenerator creates a generator using the wall clock
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{Now: time.Now}
}

// Render produces the grouped markdown document
func (g *ReportGenerator) Render(records []entities.ResolutionRecord) string {
	var resolved, manual, unresolved []entities.ResolutionRecord
	for _, r := range records {
		switch r.Status {
		case entities.StatusResolved:
			resolved = append(resolved, r)
		case entities.StatusManual:
			manual = append(manual, r)
		default:
			unresolved = append(unresolved, r)
		}
	}

	var b strings.Builder
	b.WriteString("# Manual Downloads\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", g.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Total: %d | Ready to Download: %d | Manual Search Required: %d | Unable to Find: %d\n",
		len(records), len(resolved), len(manual), len(unresolved))

	g.writeSection(&b, "Ready to Download", resolved)
	g.writeSection(&b, "Manual Search Required", manual)
	g.writeSection(&b, "Unable to Find", unresolved)

	return b.String()
}

func (g *ReportGenerator) writeSection(b *strings.Builder, title string, records []entities.ResolutionRecord) {
	fmt.Fprintf(b, "\n## %s (%d)\n", title, len(records))

	for _, r := range records {
		fmt.Fprintf(b, "\n### %s\n\n", r.SoftwareName)
		if r.Version != "" {
			fmt.Fprintf(b, "- Version: %s\n", r.Version)
		}
		if r.Publisher != "" {
			fmt.Fprintf(b, "- Publisher: %s\n", r.Publisher)
		}
		fmt.Fprintf(b, "- Architecture: %s\n", r.Architecture)
		if r.Source != "" {
			fmt.Fprintf(b, "- Source: %s\n", r.Source)
		}
		if r.URL != "" {
			fmt.Fprintf(b, "- URL: [%s](%s)\n", r.URL, r.URL)
		}
		if r.SignatureURL != "" {
			fmt.Fprintf(b, "- Signature: [%s](%s)\n", r.SignatureURL, r.SignatureURL)
		}
		if len(r.Notes) > 0 {
			b.WriteString("- Notes:\n")
			for _, note := range r.Notes {
				fmt.Fprintf(b, "  - %s\n", note)
			}
		}
	}
}
