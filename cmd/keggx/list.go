package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iamjli/keggx/internal/catalog"
	"github.com/iamjli/keggx/internal/config"
	keggxhttp "github.com/iamjli/keggx/internal/http"
)

// runList fetches the catalog listing and prints its identifiers.
func runList(args []string) int {
	def := config.Default()

	fs := flag.NewFlagSet("list", flag.ExitOnError)

	listingURL := fs.String("listing-url", def.ListingURL, "Catalog listing URL")
	filter := fs.String("filter", "", "Only print records containing this substring")
	long := fs.Bool("long", false, "Print full records instead of identifiers")
	timeout := fs.Duration("timeout", def.Timeout, "Request timeout")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: keggx list [options]

Fetch a catalog listing and print its identifiers, one per line.
Useful for inspecting a catalog before syncing it.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := keggxhttp.NewClient(keggxhttp.Options{Timeout: *timeout})
	body, err := client.Get(ctx, *listingURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitListingError
	}
	defer body.Close()

	count := 0
	sc := catalog.NewScanner(body)
	for sc.Scan() {
		rec := sc.Record()
		if *filter != "" && !strings.Contains(rec.Line(), *filter) {
			continue
		}
		if *long {
			fmt.Println(rec.Line())
		} else {
			fmt.Println(rec.ID)
		}
		count++
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitListingError
	}

	fmt.Fprintf(os.Stderr, "[keggx] %d records\n", count)
	return ExitSuccess
}
