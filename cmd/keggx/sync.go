package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamjli/keggx/internal/catalog"
	"github.com/iamjli/keggx/internal/config"
	"github.com/iamjli/keggx/internal/fetcher"
	keggxhttp "github.com/iamjli/keggx/internal/http"
	"github.com/iamjli/keggx/internal/progress"
)

// runSync fetches the catalog listing and downloads one resource per
// identifier into the output location.
func runSync(args []string) int {
	def := config.Default()

	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	configPath := fs.String("config", "", "YAML config file")
	listingURL := fs.String("listing-url", def.ListingURL, "Catalog listing URL")
	template := fs.String("resource-template", def.Template, "Resource URL template with {id} placeholder")
	stripPrefix := fs.Int("strip-prefix-length", def.StripPrefix, "Characters stripped from the identifier to name the output")
	output := fs.String("output-dir", def.Output, "Output directory or bucket URL")
	extension := fs.String("extension", def.Extension, "Output file extension")
	concurrency := fs.Int("concurrency", def.Workers, "Number of parallel fetch workers")
	timeout := fs.Duration("timeout", def.Timeout, "Per-request timeout")
	filter := fs.String("filter", "", "Only sync listing records containing this substring")
	showProgress := fs.Bool("progress", false, "Show progress output")
	manifest := fs.Bool("manifest", false, "Write a manifest.json of fetched items")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: keggx sync [options]

Fetch a catalog listing, derive one resource URL per identifier, and
download each resource to the output location. Defaults sync the human
pathway KGML files from the KEGG REST API.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	// Precedence: flags > environment > config file > defaults
	cfg := def
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitInvalidArgs
		}
		cfg = loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listing-url":
			cfg.ListingURL = *listingURL
		case "resource-template":
			cfg.Template = *template
		case "strip-prefix-length":
			cfg.StripPrefix = *stripPrefix
		case "output-dir":
			cfg.Output = *output
		case "extension":
			cfg.Extension = *extension
		case "concurrency":
			cfg.Workers = *concurrency
		case "timeout":
			cfg.Timeout = *timeout
		case "filter":
			cfg.Filter = *filter
		case "progress":
			cfg.Progress = *showProgress
		case "manifest":
			cfg.Manifest = *manifest
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[keggx] Received interrupt, shutting down...")
		cancel()
	}()

	// Open output bucket
	bucket, err := openOutputBucket(ctx, cfg.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}
	defer bucket.Close()

	// Setup progress reporter
	var reporter *progress.Reporter
	if cfg.Progress {
		reporter = progress.NewReporter(progress.Options{
			Workers:   cfg.Workers,
			SourceURL: cfg.ListingURL,
		})
		reporter.Start()
		defer reporter.Stop()
	}

	start := time.Now()
	summary, err := fetcher.Sync(ctx, cfg.ListingURL, catalog.Template(cfg.Template), bucket, fetcher.Options{
		Workers:     cfg.Workers,
		StripPrefix: cfg.StripPrefix,
		Extension:   cfg.Extension,
		Filter:      cfg.Filter,
		Progress:    reporter,
		Manifest:    cfg.Manifest,
		HTTPOptions: keggxhttp.Options{
			MaxIdleConnsPerHost: cfg.Workers * 2,
			Timeout:             cfg.Timeout,
		},
	})
	if reporter != nil {
		reporter.Stop()
	}
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "[keggx] Sync interrupted")
			return ExitGeneralError
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, fetcher.ErrManifestWrite) {
			return ExitStorageError
		}
		return ExitListingError
	}

	for _, item := range summary.Failed {
		fmt.Fprintf(os.Stderr, "[keggx] Failed: %v\n", item)
	}
	fmt.Fprintf(os.Stderr, "[keggx] Synced %d of %d items (%s) to %s in %s\n",
		summary.Fetched, summary.Attempted,
		progress.FormatBytes(summary.Bytes),
		cfg.Output,
		time.Since(start).Round(time.Millisecond),
	)

	if len(summary.Failed) > 0 {
		fmt.Fprintf(os.Stderr, "[keggx] %d of %d items failed\n", len(summary.Failed), summary.Attempted)
		return ExitPartialFailure
	}
	return ExitSuccess
}
