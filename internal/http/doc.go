// Package http provides the HTTP client used to fetch catalog listings
// and per-identifier resources.
//
// This package handles:
//   - Connection pooling for parallel fetches
//   - HEAD requests to get resource metadata
//   - Plain GET requests with a per-request timeout
//   - Mapping status codes to sentinel errors
//
// There is no retry logic: transport failures and non-2xx responses are
// surfaced to the caller, and re-running the tool is the recovery
// mechanism.
//
// # Usage
//
//	client := http.NewClient(Options{
//	    MaxIdleConnsPerHost: 100,
//	    Timeout:             30 * time.Second,
//	})
//
//	body, err := client.Get(ctx, url)
//	defer body.Close()
package http
