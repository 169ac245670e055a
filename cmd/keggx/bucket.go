package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// openOutputBucket opens the output location as a blob bucket. A plain
// path is treated as a local directory (created if missing); anything
// with a URL scheme is handed to the gocloud URL opener, so s3://,
// gs:// and file:// outputs all work.
func openOutputBucket(ctx context.Context, output string) (*blob.Bucket, error) {
	if strings.Contains(output, "://") {
		bucket, err := blob.OpenBucket(ctx, output)
		if err != nil {
			return nil, fmt.Errorf("open bucket %s: %w", output, err)
		}
		return bucket, nil
	}

	if err := os.MkdirAll(output, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	// No .attrs sidecar files: the output directory holds only the
	// downloaded resources.
	bucket, err := fileblob.OpenBucket(output, &fileblob.Options{
		Metadata: fileblob.MetadataDontWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("open output directory %s: %w", output, err)
	}
	return bucket, nil
}
