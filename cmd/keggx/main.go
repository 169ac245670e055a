package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitInvalidArgs    = 2
	ExitListingError   = 3
	ExitStorageError   = 4
	ExitPartialFailure = 5
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "sync":
		return runSync(cmdArgs)
	case "fetch":
		return runFetch(cmdArgs)
	case "list":
		return runList(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: keggx <command> [options]

Commands:
  sync   Fetch a catalog listing and download one resource per identifier
  fetch  Download one or more static URLs to the output location
  list   Fetch a catalog listing and print its identifiers

Run 'keggx <command> -h' for command-specific help.`)
}
