package http

import (
	"context"
	"io"
	"net/http"
	"time"

	ioutils "github.com/handiism/panels-downloader/internal/io"
)

// Default request identification. The image CDN rejects requests that do
// not look like they come from a browser on the Panels site.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/85.0.4183.83 Safari/537.36"
	DefaultReferer         = "https://panelsapp.com/"
	DefaultAccept          = "image/webp,image/apng,image/*,*/*;q=0.8"
	DefaultTimeout         = 5 * time.Minute
	DefaultMaxConnsPerHost = 5
)

// ClientConfig holds the request settings of a Client.
type ClientConfig struct {
	// UserAgent, Referer and Accept are sent on every request.
	UserAgent string
	Referer   string
	Accept    string

	// Timeout bounds a whole request including reading the body.
	Timeout time.Duration

	// MaxConnsPerHost caps simultaneous requests to one host.
	MaxConnsPerHost int
}

// DefaultClientConfig returns the configuration expected by the image CDN.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		UserAgent:       DefaultUserAgent,
		Referer:         DefaultReferer,
		Accept:          DefaultAccept,
		Timeout:         DefaultTimeout,
		MaxConnsPerHost: DefaultMaxConnsPerHost,
	}
}

// Client wraps HTTP operations with the headers and per-host connection cap
// the image CDN requires.
//
// Client provides:
//   - Fixed User-Agent, Referer and Accept headers
//   - A per-host cap on in-flight requests, shared by all callers
//   - File download with progress tracking
//
// Example usage:
//
//	client := NewClient(DefaultClientConfig())
//
//	n, err := client.DownloadFile(ctx, imageURL, "/path/to/image.png", nil)
//	var statusErr *StatusError
//	if errors.As(err, &statusErr) {
//	    fmt.Printf("server said %d\n", statusErr.StatusCode)
//	}
type Client struct {
	httpClient *http.Client
	limiter    *HostLimiter
	userAgent  string
	referer    string
	accept     string
}

// NewClient creates a new HTTP client from cfg.
func NewClient(cfg *ClientConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxConnsPerHost = cfg.MaxConnsPerHost

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		limiter:   NewHostLimiter(cfg.MaxConnsPerHost),
		userAgent: cfg.UserAgent,
		referer:   cfg.Referer,
		accept:    cfg.Accept,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header), -1 if unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
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

// DownloadFile downloads url to destPath and returns the number of bytes written.
//
// The call waits for a free slot of the URL's host before the request is
// sent and holds it until the body has been read. The body is streamed to a
// temporary file next to destPath which then replaces destPath, so an
// existing file is overwritten and a failed download leaves nothing behind.
//
// Errors:
//   - *StatusError if the response status is not 200 OK
//   - *TransportError if the request or reading the body fails
//   - a wrapped filesystem error if the file cannot be written
//
// Pass a nil onProgress to disable progress tracking.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &TransportError{URL: url, Err: err}
	}
	c.setHeaders(req)

	release, err := c.limiter.Acquire(ctx, HostKey(req.URL))
	if err != nil {
		return 0, &TransportError{URL: url, Err: err}
	}
	defer release()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body := &bodyReader{r: resp.Body}
	var written int64
	err = ioutils.WriteFileAtomic(destPath, func(w io.Writer) error {
		if onProgress != nil {
			w = &ProgressWriter{Writer: w, Total: resp.ContentLength, OnUpdate: onProgress}
		}
		n, err := io.Copy(w, body)
		written = n
		return err
	})
	if err != nil {
		if body.err != nil {
			return 0, &TransportError{URL: url, Err: body.err}
		}
		return 0, err
	}

	return written, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	if c.referer != "" {
		req.Header.Set("Referer", c.referer)
	}
	if c.accept != "" {
		req.Header.Set("Accept", c.accept)
	}
}

// bodyReader records the first read error other than io.EOF, so that a
// broken connection can be told apart from a failing disk.
type bodyReader struct {
	r   io.Reader
	err error
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && err != io.EOF && b.err == nil {
		b.err = err
	}
	return n, err
}
