package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Fetcher retrieves the raw workbook bytes from an http(s) URL, a file:// URL,
// or a plain filesystem path.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a Fetcher whose HTTP requests are bounded by timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Open returns a reader over the workbook at source. The caller closes it.
func (f *Fetcher) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Bare paths, including Windows drive letters, go to the filesystem.
		return openFile(source)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return f.get(ctx, source)
	case "file":
		return openFile(u.Path)
	default:
		return nil, fmt.Errorf("unsupported dataset scheme %q", u.Scheme)
	}
}

func (f *Fetcher) get(ctx context.Context, source string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("fetch dataset: status %d: %s", resp.StatusCode, body)
	}
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return f, nil
}
