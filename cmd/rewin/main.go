package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Interrupt stops the run at the next entry boundary; records
	// completed so far are kept.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "resolve":
		runResolve(ctx, os.Args[2:])
	case "list":
		runList(ctx, os.Args[2:])
	case "report":
		runReport(ctx, os.Args[2:])
	case "download":
		runDownload(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rewin - installer source resolution for migration packages

Usage:
  rewin <command> [options]

Commands:
  resolve   Resolve installer sources for inventoried software
  list      List software entries in a migration package
  report    Re-render the markdown report from saved records
  download  Download resolved installers from saved records

Use "rewin <command> --help" for more information about a command.`)
}
