package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"gocloud.dev/blob"

	"github.com/iamjli/keggx/internal/catalog"
	keggxhttp "github.com/iamjli/keggx/internal/http"
	"github.com/iamjli/keggx/internal/progress"
)

// Options configures a catalog sync.
type Options struct {
	// Workers is the number of parallel fetch workers.
	// Default: 1 (sequential).
	Workers int

	// StripPrefix is the number of characters stripped from each
	// identifier to derive the output key.
	StripPrefix int

	// Extension is appended to the output key to form the object name.
	// Default: ".xml".
	Extension string

	// Filter, when non-empty, restricts the sync to listing records
	// whose full line contains the substring.
	Filter string

	// Progress is an optional progress reporter.
	Progress *progress.Reporter

	// Manifest enables writing a manifest.json describing the fetched
	// items to the bucket after the sync.
	Manifest bool

	// HTTPOptions configures the HTTP client.
	HTTPOptions keggxhttp.Options
}

// ItemError records the failure of a single item during a sync.
type ItemError struct {
	Identifier string
	URL        string
	Err        error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %s: %v", e.Identifier, e.Err)
}

func (e ItemError) Unwrap() error {
	return e.Err
}

// Summary reports the outcome of a sync.
type Summary struct {
	Attempted int
	Fetched   int
	Bytes     int64
	Failed    []ItemError
}

// Manifest describes the items written by a completed sync.
type Manifest struct {
	ListingURL string         `json:"listing_url"`
	Template   string         `json:"template"`
	SyncedAt   time.Time      `json:"synced_at"`
	Items      []ManifestItem `json:"items"`
}

// ManifestItem describes a single fetched item.
type ManifestItem struct {
	Key        string `json:"key"`
	Identifier string `json:"identifier"`
	Source     string `json:"source"`
	Size       int64  `json:"size"`
}

// ManifestObject is the bucket key the manifest is written under.
const ManifestObject = "manifest.json"

// ErrManifestWrite marks a failure to persist the manifest after the
// items themselves were fetched. Callers can detect it with errors.Is
// to distinguish it from listing failures.
var ErrManifestWrite = errors.New("write manifest")

// Sync fetches the catalog listing, derives one resource URL per
// identifier, and writes each resource to the bucket as <key><ext>.
//
// A listing failure is fatal and aborts the sync before any write.
// Per-item failures (resource fetch, key derivation, bucket write) are
// isolated: they are collected in the summary and the remaining items
// are still attempted. Re-running a sync overwrites prior output.
func Sync(ctx context.Context, listingURL string, template catalog.Template, bucket *blob.Bucket, opts Options) (*Summary, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Extension == "" {
		opts.Extension = ".xml"
	}
	if !strings.HasPrefix(opts.Extension, ".") {
		opts.Extension = "." + opts.Extension
	}

	client := keggxhttp.NewClient(opts.HTTPOptions)

	// Fetch the listing. Nothing can be derived without it, so any
	// failure here aborts the whole run.
	body, err := client.Get(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	defer body.Close()

	type item struct {
		id  string
		key string
		url string
	}

	summary := &Summary{}
	var items []ManifestItem
	var mu sync.Mutex

	jobs := make(chan item, opts.Workers)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				n, err := fetchItem(ctx, client, bucket, job.url, job.key+opts.Extension, opts.Progress)

				mu.Lock()
				if err != nil {
					summary.Failed = append(summary.Failed, ItemError{
						Identifier: job.id,
						URL:        job.url,
						Err:        err,
					})
				} else {
					summary.Fetched++
					summary.Bytes += n
					items = append(items, ManifestItem{
						Key:        job.key + opts.Extension,
						Identifier: job.id,
						Source:     job.url,
						Size:       n,
					})
				}
				mu.Unlock()
			}
		}()
	}

	// Feed items from the listing. The scanner is lazy, so items start
	// downloading while the listing body is still streaming in.
	sc := catalog.NewScanner(body)
	for sc.Scan() {
		rec := sc.Record()
		if opts.Filter != "" && !strings.Contains(rec.Line(), opts.Filter) {
			continue
		}

		mu.Lock()
		summary.Attempted++
		mu.Unlock()

		key, err := catalog.DeriveKey(rec.ID, opts.StripPrefix)
		if err != nil {
			mu.Lock()
			summary.Failed = append(summary.Failed, ItemError{Identifier: rec.ID, Err: err})
			mu.Unlock()
			continue
		}

		select {
		case jobs <- item{id: rec.ID, key: key, url: template.Expand(rec.ID)}:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return summary, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	// A read error mid-listing leaves the sync incomplete and is fatal.
	if err := sc.Err(); err != nil {
		return summary, fmt.Errorf("read listing: %w", err)
	}

	if ctx.Err() != nil {
		return summary, ctx.Err()
	}

	if opts.Manifest {
		if err := writeManifest(ctx, bucket, listingURL, template, items); err != nil {
			return summary, fmt.Errorf("%w: %w", ErrManifestWrite, err)
		}
	}

	return summary, nil
}

// FetchOne downloads a single resource URL and writes it to the bucket
// under the given key. It returns the number of bytes written.
func FetchOne(ctx context.Context, url, key string, bucket *blob.Bucket, opts Options) (int64, error) {
	client := keggxhttp.NewClient(opts.HTTPOptions)
	return fetchItem(ctx, client, bucket, url, key, opts.Progress)
}

// fetchItem downloads a single resource and writes it to the bucket.
func fetchItem(ctx context.Context, client *keggxhttp.Client, bucket *blob.Bucket, url, key string, reporter *progress.Reporter) (int64, error) {
	if reporter != nil {
		reporter.ItemStarted()
	}

	body, err := client.Get(ctx, url)
	if err != nil {
		if reporter != nil {
			reporter.ItemFailed()
		}
		return 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer body.Close()

	w, err := bucket.NewWriter(ctx, key, nil)
	if err != nil {
		if reporter != nil {
			reporter.ItemFailed()
		}
		return 0, fmt.Errorf("create %s: %w", key, err)
	}

	n, err := io.Copy(w, body)
	if err != nil {
		w.Close()
		if reporter != nil {
			reporter.ItemFailed()
		}
		return 0, fmt.Errorf("write %s: %w", key, err)
	}

	if err := w.Close(); err != nil {
		if reporter != nil {
			reporter.ItemFailed()
		}
		return 0, fmt.Errorf("close %s: %w", key, err)
	}

	if reporter != nil {
		reporter.ItemCompleted(n)
	}

	return n, nil
}

// writeManifest records the fetched items in manifest.json in the bucket.
// Items are sorted by key so the manifest is stable across runs with
// concurrent workers.
func writeManifest(ctx context.Context, bucket *blob.Bucket, listingURL string, template catalog.Template, items []ManifestItem) error {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Key < items[j].Key
	})

	manifest := Manifest{
		ListingURL: listingURL,
		Template:   string(template),
		SyncedAt:   time.Now().UTC(),
		Items:      items,
	}

	data, err := json.MarshalIndent(&manifest, "", "  ")
	if err != nil {
		return err
	}

	return bucket.WriteAll(ctx, ManifestObject, data, nil)
}

// ReadManifest loads a previously written manifest from the bucket.
func ReadManifest(ctx context.Context, bucket *blob.Bucket) (*Manifest, error) {
	data, err := bucket.ReadAll(ctx, ManifestObject)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &manifest, nil
}
