// Package fetcher orchestrates bulk resource downloads driven by a
// catalog listing.
//
// This package coordinates between the HTTP client, the catalog scanner
// and the output bucket. A sync is a single linear pass: fetch the
// listing, derive one resource URL per identifier, download each
// resource, and write it to the bucket under <key><ext>.
//
// # Usage
//
// The main entry point is the Sync function:
//
//	summary, err := fetcher.Sync(ctx, listingURL, template, bucket, Options{
//	    Workers:     4,
//	    StripPrefix: 8,
//	    Extension:   ".xml",
//	})
//
// # Failure Policy
//
// A listing failure is fatal: no resources can be derived without it.
// Per-item failures are isolated; the failing item is recorded in the
// summary and the remaining items are still attempted, so a single bad
// pathway does not abort a whole sync. There are no retries: writes are
// idempotent (overwrite by key), so re-running the sync is the recovery
// mechanism.
//
// # Worker Pool
//
// By default items are fetched sequentially, in listing order. With
// Workers > 1 a feeder goroutine streams the listing into a jobs channel
// consumed by a fixed pool of workers; ordering of writes is then not
// guaranteed, but every item writes a distinct object so no locking is
// needed beyond the shared summary.
package fetcher
