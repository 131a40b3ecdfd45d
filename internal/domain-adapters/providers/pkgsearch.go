package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/rewintool/rewin/internal/domain/entities"
	"github.com/rewintool/rewin/internal/domain/interfaces/gateways"
	"github.com/rewintool/rewin/internal/domain/services"
)

// PackageSearchProvider runs a package manager's live search and matches
// the tabular output against the entry name. One instance exists per
// ecosystem; both tools print the same shape: header lines, a dashed
// separator, then whitespace-delimited columns ending in identifier and
// version with the display name in front.
type PackageSearchProvider struct {
	runner    gateways.CommandRunner
	tool      string
	buildArgs func(term string) []string
	source    entities.Source
	ecosystem services.Ecosystem
}

// NewWingetSearchProvider creates the winget ecosystem search provider
func NewWingetSearchProvider(runner gateways.CommandRunner) *PackageSearchProvider {
	return &PackageSearchProvider{
		runner: runner,
		tool:   "winget",
		buildArgs: func(term string) []string {
			return []string{"search", term, "--accept-source-agreements", "--disable-interactivity"}
		},
		source:    entities.SourceWinget,
		ecosystem: services.EcosystemWinget,
	}
}

// NewChocolateySearchProvider creates the chocolatey ecosystem search provider
func NewChocolateySearchProvider(runner gateways.CommandRunner) *PackageSearchProvider {
	return &PackageSearchProvider{
		runner: runner,
		tool:   "choco",
		buildArgs: func(term string) []string {
			return []string{"search", term, "--no-color"}
		},
		source:    entities.SourceChocolatey,
		ecosystem: services.EcosystemChocolatey,
	}
}

// Name identifies the provider in diagnostics
func (p *PackageSearchProvider) Name() string { return string(p.source) + "-search" }

// Attempt runs the tool's search and applies the similarity test to each
// result's display name, accepting the first match.
func (p *PackageSearchProvider) Attempt(ctx context.Context, entry entities.SoftwareEntry, _ entities.Architecture) Result {
	if !services.Searchable(entry.Name) {
		return notFound("name too short for live search")
	}

	if !p.runner.Available(p.tool) {
		return absorb(ErrProviderUnavailable, p.tool+" not installed")
	}

	term := services.CleanName(entry.Name)
	result, err := p.runner.Run(ctx, p.tool, p.buildArgs(term)...)
	if err != nil {
		return absorb(ErrProviderUnavailable, fmt.Sprintf("%s search failed: %v", p.tool, err))
	}
	if result.ExitCode != 0 {
		return absorb(ErrNoMatch, fmt.Sprintf("%s search exited %d", p.tool, result.ExitCode))
	}

	rows, err := parsePackageTable(result.Stdout)
	if err != nil {
		return absorb(ErrMalformedResponse, fmt.Sprintf("%s output not understood: %v", p.tool, err))
	}

	for _, row := range rows {
		if services.SimilarName(entry.Name, row.Name) {
			return Result{
				Found:    true,
				URL:      IdentifierURL(p.ecosystem, row.ID),
				Source:   p.source,
				Verified: true,
				Note:     fmt.Sprintf("%s match: %s %s", p.tool, row.ID, row.Version),
			}
		}
	}

	return notFound(fmt.Sprintf("%s: no result similar to %q", p.tool, entry.Name))
}

// packageRow is one parsed search result
type packageRow struct {
	Name    string
	ID      string
	Version string
}

// parsePackageTable parses the tools' tabular search output: everything up
// to and including the dashed separator line is header, every following
// non-empty line splits on whitespace into display name columns followed
// by identifier and version.
func parsePackageTable(output string) ([]packageRow, error) {
	lines := strings.Split(output, "\n")

	separator := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= 4 && strings.Count(trimmed, "-") == len(trimmed) {
			separator = i
			break
		}
	}
	if separator < 0 {
		return nil, fmt.Errorf("no header separator in output")
	}

	var rows []packageRow
	for _, line := range lines[separator+1:] {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		rows = append(rows, packageRow{
			Name:    strings.Join(fields[:len(fields)-2], " "),
			ID:      fields[len(fields)-2],
			Version: fields[len(fields)-1],
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no result rows after separator")
	}
	return rows, nil
}
