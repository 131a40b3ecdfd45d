package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rewintool/rewin/internal/domain/entities"
	"github.com/rewintool/rewin/internal/external-adapters/jsonpkg"
)

func runList(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var (
		pkgPath = fs.String("package", "migration_package.json", "Path to the migration package")
		method  = fs.String("method", "", "Filter by install method (Winget, Chocolatey, Store, Manual)")
		search  = fs.String("search", "", "Filter by name substring (case-insensitive)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rewin list [options]

List software entries in a migration package.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  rewin list --package E:/ReWin/migration_package.json
  rewin list --method Manual
  rewin list --search firefox
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	repo := jsonpkg.NewPackageRepository(*pkgPath)
	entries, err := repo.ListSoftware(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading migration package: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tMETHOD\tPUBLISHER\tPACKAGE ID")

	shown := 0
	for _, e := range entries {
		if *method != "" && !strings.EqualFold(string(e.InstallMethod), *method) {
			continue
		}
		if *search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(*search)) {
			continue
		}

		id := e.WingetID
		if id == "" {
			id = e.ChocolateyID
		}
		if id == "" {
			id = e.PackageFamilyName
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Version, e.InstallMethod, e.Publisher, id)
		shown++
	}

	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	if *method == "" && *search == "" {
		counts := methodCounts(entries)
		fmt.Printf("\nTotal: %d | Winget: %d | Chocolatey: %d | Store: %d | Manual: %d\n",
			len(entries),
			counts[entities.InstallMethodWinget],
			counts[entities.InstallMethodChocolatey],
			counts[entities.InstallMethodStore],
			counts[entities.InstallMethodManual])
		return
	}
	fmt.Printf("\n%d of %d entries\n", shown, len(entries))
}

func methodCounts(entries []entities.SoftwareEntry) map[entities.InstallMethod]int {
	counts := make(map[entities.InstallMethod]int)
	for _, e := range entries {
		counts[e.InstallMethod]++
	}
	return counts
}
