package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rewintool/rewin/internal/domain/services"
	"github.com/rewintool/rewin/internal/external-adapters/jsonpkg"
)

func runReport(_ context.Context, args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	var (
		recordsPath = fs.String("records", "resolution_records.json", "Path to a saved record set")
		outputPath  = fs.String("output", "-", "Report destination file, or - for stdout")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rewin report [options]

Re-render the grouped markdown report from a saved record set. The body
is deterministic for a given record set; only the generation header
changes between renders.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	records, err := jsonpkg.NewRecordStore().Load(*recordsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading records: %v\n", err)
		os.Exit(1)
	}

	report := services.NewReportGenerator().Render(records)

	if *outputPath == "-" {
		fmt.Print(report)
		return
	}
	if err := os.WriteFile(*outputPath, []byte(report), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report written to %s\n", *outputPath)
}
