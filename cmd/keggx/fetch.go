package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iamjli/keggx/internal/fetcher"
	keggxhttp "github.com/iamjli/keggx/internal/http"
	"github.com/iamjli/keggx/internal/progress"
)

// runFetch downloads one or more static URLs to the output location,
// e.g. the KEGG compound ID mapping or the Reactome interaction archive.
func runFetch(args []string) int {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)

	output := fs.String("output-dir", ".", "Output directory or bucket URL")
	name := fs.String("name", "", "Output name (single URL only; default: URL basename)")
	concurrency := fs.Int("concurrency", 2, "Number of URLs downloaded in parallel")
	timeout := fs.Duration("timeout", 5*time.Minute, "Per-request timeout")
	dryRun := fs.Bool("dry-run", false, "Check each URL with a HEAD request and print its size without downloading")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: keggx fetch [options] <url> [<url>...]

Download one or more static URLs to the output location. Each URL is
written under its basename unless -name is given.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	urls := fs.Args()
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one URL is required")
		fs.Usage()
		return ExitInvalidArgs
	}
	if *name != "" && len(urls) > 1 {
		fmt.Fprintln(os.Stderr, "Error: -name only applies to a single URL")
		return ExitInvalidArgs
	}

	keys := make([]string, len(urls))
	for i, raw := range urls {
		key, err := outputName(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitInvalidArgs
		}
		keys[i] = key
	}
	if *name != "" {
		keys[0] = *name
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[keggx] Received interrupt, shutting down...")
		cancel()
	}()

	if *dryRun {
		return headURLs(ctx, urls, keys, *timeout)
	}

	bucket, err := openOutputBucket(ctx, *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}
	defer bucket.Close()

	opts := fetcher.Options{
		HTTPOptions: keggxhttp.Options{Timeout: *timeout},
	}

	// Per-URL failures are isolated: every URL is attempted even when
	// another one fails.
	var mu sync.Mutex
	failures := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)
	for i := range urls {
		src, key := urls[i], keys[i]
		g.Go(func() error {
			n, err := fetcher.FetchOne(gctx, src, key, bucket, opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[keggx] Failed: %s: %v\n", src, err)
				mu.Lock()
				failures++
				mu.Unlock()
				return nil
			}
			fmt.Fprintf(os.Stderr, "[keggx] Fetched %s (%s)\n", key, progress.FormatBytes(n))
			return nil
		})
	}
	g.Wait()

	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "[keggx] Fetch interrupted")
		return ExitGeneralError
	}
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "[keggx] %d of %d downloads failed\n", failures, len(urls))
		return ExitPartialFailure
	}
	return ExitSuccess
}

// headURLs issues a HEAD request per URL and reports the size each
// download would have, without writing anything.
func headURLs(ctx context.Context, urls, keys []string, timeout time.Duration) int {
	client := keggxhttp.NewClient(keggxhttp.Options{Timeout: timeout})

	failures := 0
	for i, src := range urls {
		info, err := client.Head(ctx, src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[keggx] Failed: %s: %v\n", src, err)
			failures++
			continue
		}
		size := "unknown size"
		if info.Size >= 0 {
			size = progress.FormatBytes(info.Size)
		}
		fmt.Fprintf(os.Stderr, "[keggx] %s: %s\n", keys[i], size)
	}

	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "[keggx] Fetch interrupted")
		return ExitGeneralError
	}
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "[keggx] %d of %d checks failed\n", failures, len(urls))
		return ExitPartialFailure
	}
	return ExitSuccess
}

// outputName derives the output key for a URL from the last path segment.
func outputName(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", raw, err)
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("cannot derive output name from %s, use -name", raw)
	}
	return base, nil
}
