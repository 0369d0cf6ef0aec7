// Package http provides an HTTP client configured for the xxpie photo
// service.
//
// The Client in this package handles:
//   - Browser-like headers (User-Agent, Origin, Referer) the service expects
//   - A per-request timeout
//   - Request pacing via a rate limiter, so album batches stay polite
//   - File downloads with progress tracking
//   - File size retrieval via HEAD requests
//
// # Basic Usage
//
//	client := http.NewClient(30*time.Second, 500*time.Millisecond)
//	client.SetReferer(albumURL)
//
//	// Fetch album page
//	html, err := client.GetString(ctx, albumURL)
//
//	// Download file with progress callback
//	client.DownloadFile(ctx, photoURL, "/photos/IMG_0001.jpg", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// Non-200 responses are returned as *StatusError so callers can map
// status codes (a 404 on the album API, for example) to their own
// error values.
package http
