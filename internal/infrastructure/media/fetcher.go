package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher loads the raw markup of a named site document.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FileFetcher reads documents from a directory on disk.
type FileFetcher struct {
	Root string
}

func (f FileFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Clean against a rooted path so "../" cannot leave Root.
	clean := filepath.Clean("/" + filepath.FromSlash(name))
	raw, err := os.ReadFile(filepath.Join(f.Root, clean))
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}
	return raw, nil
}

// HTTPFetcher downloads documents relative to a base URL.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"/"+strings.TrimLeft(name, "/"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", name, err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch document %s: status %d", name, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}
	return raw, nil
}
