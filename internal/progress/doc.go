// Package progress provides progress reporting for catalog syncs.
//
// This package outputs human-readable progress information to stderr,
// including fetched/failed item counts and transfer speed. The listing
// is consumed lazily so the total item count is unknown; the reporter
// shows running counts instead of a percentage.
//
// # Usage
//
//	reporter := progress.NewReporter(Options{
//	    SourceURL: listingURL,
//	    Workers:   workers,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
//	// Update as items complete
//	reporter.ItemCompleted(size)
//
// # Output Format
//
//	[keggx] Syncing: http://rest.kegg.jp/list/pathway/hsa
//	[keggx] Workers: 4
//	[keggx] Items: 231 fetched | 1 failed | 4 in-progress | 48.21 MB | 1.20 MB/s
package progress
