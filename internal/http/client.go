package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Browser profile sent with every request. The photo service rejects
// clients that do not look like a real browser.
const (
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"
	defaultOrigin    = "https://www.xxpie.com"
)

// StatusError is returned when a request completes with a non-200
// status. Callers can inspect the status code to map service-level
// conditions (e.g. 404) to their own errors.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Client wraps HTTP operations with xxpie-specific configuration.
//
// Client provides:
//   - Browser-like request headers (User-Agent, Origin, Referer)
//   - A per-request timeout
//   - Request pacing so batch downloads do not hammer the service
//   - File download with progress tracking
//   - File size retrieval via HEAD requests
//
// Example usage:
//
//	client := NewClient(30*time.Second, 500*time.Millisecond)
//	client.SetReferer(albumURL)
//
//	// Fetch the album page
//	html, err := client.GetString(ctx, albumURL)
//
//	// Download a photo with progress
//	err = client.DownloadFile(ctx, photoURL, "/photos/IMG_0001.jpg", func(written, total int64) {
//	    percent := float64(written) / float64(total) * 100
//	    fmt.Printf("%.1f%%\n", percent)
//	})
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	userAgent  string
	origin     string
	referer    string
	extra      map[string]string
}

// NewClient creates a new HTTP client configured for the photo service.
//
// timeout applies to each individual request. requestDelay is the
// minimum spacing between requests; zero disables pacing.
func NewClient(timeout, requestDelay time.Duration) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(requestDelay), 1)
	}

	return &Client{
		httpClient: &http.Client{},
		limiter:    limiter,
		timeout:    timeout,
		userAgent:  defaultUserAgent,
		origin:     defaultOrigin,
	}
}

// SetReferer sets the Referer header sent with subsequent requests.
// The photo service validates the referer on image URLs, so this is
// set to the album page URL before downloading.
func (c *Client) SetReferer(referer string) {
	c.referer = referer
}

// SetHeader sets an extra header sent with subsequent requests, such
// as the x-access-token credential for the album API.
func (c *Client) SetHeader(key, value string) {
	if c.extra == nil {
		c.extra = make(map[string]string)
	}
	c.extra[key] = value
}

// do paces, decorates and executes a request with the per-request timeout.
func (c *Client) do(ctx context.Context, method, url string) (*http.Response, context.CancelFunc, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	reqCtx := ctx
	cancel := context.CancelFunc(func() {})
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, url, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Origin", c.origin)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if c.referer != "" {
		req.Header.Set("Referer", c.referer)
	}
	for key, value := range c.extra {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	return resp, cancel, nil
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns a *StatusError when the response status is not 200 OK.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, cancel, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content like HTML.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetFileSize returns the size of a file at the given URL via HEAD request.
//
// This is useful for:
//   - Pre-calculating total download size
//   - Checking if a local file matches the expected size
//
// Returns an error if the request fails or the server doesn't report
// a Content-Length.
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	resp, cancel, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header for %s", url)
	}

	return resp.ContentLength, nil
}

// DownloadFile downloads a file to the specified path with optional progress callback.
//
// The file is created (or truncated if it exists) and the content is
// streamed directly to disk, avoiding loading the entire file into memory.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes);
//     pass nil to disable progress tracking
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	resp, cancel, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return err
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	_, err = io.Copy(writer, resp.Body)
	return err
}
