// Package http provides an HTTP client configured for the Panels image CDN.
//
// The Client in this package handles:
//   - User-Agent, Referer and Accept headers the CDN expects
//   - A per-host cap on simultaneous requests (see HostLimiter)
//   - File downloads with progress tracking
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(http.DefaultClientConfig())
//
//	// Download file with progress callback
//	n, err := client.DownloadFile(ctx, imageURL, "/path/to/image.png", func(written, total int64) {
//	    fmt.Printf("%d/%d\n", written, total)
//	})
//
// # Errors
//
// A non-200 response yields *StatusError, a failed request or a broken body
// yields *TransportError. Neither writes a file.
//
// # Per-host Limit
//
// All downloads made through one Client share a HostLimiter. With the
// default configuration at most 5 requests run against one host at a time;
// further callers wait for a slot.
package http
