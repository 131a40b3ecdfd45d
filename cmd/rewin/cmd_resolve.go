package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rewintool/rewin/internal/domain-adapters/gateways"
	"github.com/rewintool/rewin/internal/domain-adapters/providers"
	orchestrators "github.com/rewintool/rewin/internal/domain-orchestrators"
	"github.com/rewintool/rewin/internal/domain/entities"
	"github.com/rewintool/rewin/internal/domain/interfaces"
	"github.com/rewintool/rewin/internal/domain/services"
	"github.com/rewintool/rewin/internal/external-adapters/charmlog"
	"github.com/rewintool/rewin/internal/external-adapters/jsonpkg"
	yamlrules "github.com/rewintool/rewin/internal/external-adapters/yaml"
)

func runResolve(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	var (
		pkgPath    = fs.String("package", "migration_package.json", "Path to the migration package")
		outputDir  = fs.String("output-dir", ".", "Directory for the report and record files")
		rulesFile  = fs.String("rules", "", "YAML rules file extending the curated tables")
		archFlag   = fs.String("arch", "", "Override detected architecture (x64 or x86)")
		jobs       = fs.Int("jobs", 1, "Worker pool size (1 = sequential)")
		timeout    = fs.Duration("provider-timeout", 20*time.Second, "Timeout per provider attempt")
		includeAll = fs.Bool("all", false, "Also resolve entries already mapped to a package manager")
		verbose    = fs.Bool("verbose", false, "Enable debug logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rewin resolve [options]

Resolve installer sources for every software entry in the migration
package that is not already mapped to a package manager. Writes
resolution_records.json and manual_downloads.md to the output directory.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  rewin resolve --package E:/ReWin/migration_package.json
  rewin resolve --jobs 4 --arch x86
  rewin resolve --rules my-rules.yml --output-dir out
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	logger := charmlog.New(*verbose)

	arch := entities.DetectArchitecture()
	if *archFlag != "" {
		parsed, err := entities.ParseArchitecture(*archFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		arch = parsed
	}

	// Failing to load the inventory is the one fatal condition
	repo := jsonpkg.NewPackageRepository(*pkgPath)
	entries, err := repo.ListSoftware(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading migration package: %v\n", err)
		os.Exit(1)
	}

	var extraMappings []services.MappingRule
	var extraVendors []services.VendorPage
	if *rulesFile != "" {
		extraMappings, extraVendors, err = yamlrules.NewRulesLoader().Load(*rulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rules file: %v\n", err)
			os.Exit(1)
		}
	}
	mappingTable, vendorTable := resolveTables(extraMappings, extraVendors)

	toResolve := entries
	if !*includeAll {
		toResolve = pendingEntries(entries)
	}

	logger.Info("starting resolution",
		interfaces.F("total", len(entries)),
		interfaces.F("to_resolve", len(toResolve)),
		interfaces.F("architecture", arch.Name))

	pipeline := orchestrators.NewResolutionPipeline(
		buildProviderChain(mappingTable, vendorTable),
		arch,
		orchestrators.ResolutionPipelineConfig{
			AttemptTimeout: *timeout,
			Jobs:           *jobs,
		},
		logger,
	)

	records := pipeline.Resolve(ctx, toResolve)

	recordsPath := filepath.Join(*outputDir, "resolution_records.json")
	if err := jsonpkg.NewRecordStore().Save(recordsPath, records); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing records: %v\n", err)
		os.Exit(1)
	}

	reportPath := filepath.Join(*outputDir, "manual_downloads.md")
	report := services.NewReportGenerator().Render(records)
	if err := os.WriteFile(reportPath, []byte(report), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}

	var resolved, manual, unresolved int
	for _, r := range records {
		switch r.Status {
		case entities.StatusResolved:
			resolved++
		case entities.StatusManual:
			manual++
		default:
			unresolved++
		}
	}

	fmt.Printf("Resolved %d entries: %d ready to download, %d manual, %d unresolved\n",
		len(records), resolved, manual, unresolved)
	fmt.Printf("Records: %s\nReport:  %s\n", recordsPath, reportPath)

	if len(records) < len(toResolve) {
		fmt.Fprintf(os.Stderr, "Run interrupted: %d of %d entries processed\n", len(records), len(toResolve))
		os.Exit(1)
	}
}

// resolveTables builds the mapping and vendor tables used by the chain.
// Rules loaded from a user file come first so they shadow the curated
// defaults they overlap.
func resolveTables(extraMappings []services.MappingRule, extraVendors []services.VendorPage) (*services.MappingTable, *services.VendorTable) {
	mappings := make([]services.MappingRule, 0, len(extraMappings))
	mappings = append(mappings, extraMappings...)
	mappings = append(mappings, services.DefaultMappingRules()...)

	vendors := make([]services.VendorPage, 0, len(extraVendors))
	vendors = append(vendors, extraVendors...)
	vendors = append(vendors, services.DefaultVendorPages()...)

	return services.NewMappingTable(mappings...), services.NewVendorTable(vendors...)
}

// pendingEntries drops entries the scanner already mapped to a package
// manager; those bypass the pipeline entirely.
func pendingEntries(entries []entities.SoftwareEntry) []entities.SoftwareEntry {
	pending := make([]entities.SoftwareEntry, 0, len(entries))
	for _, e := range entries {
		if !e.PreResolved() {
			pending = append(pending, e)
		}
	}
	return pending
}

// buildProviderChain assembles the fixed fallback order: static map first
// (no external calls), then the live providers, vendor lookup last as the
// guaranteed terminal step.
func buildProviderChain(mappingTable *services.MappingTable, vendorTable *services.VendorTable) []providers.Provider {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GH_TOKEN")
	}

	runner := gateways.NewExecRunner()

	return []providers.Provider{
		providers.NewStaticMapProvider(mappingTable),
		providers.NewGitHubReleaseProvider(gateways.NewHTTPGitHubGateway(token)),
		providers.NewWingetSearchProvider(runner),
		providers.NewChocolateySearchProvider(runner),
		providers.NewVendorPageProvider(vendorTable),
	}
}
