package ocr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultMaxImageBytes caps attachment downloads at 20 MiB.
const defaultMaxImageBytes = 20 << 20

// Fetcher downloads attachment bytes from their source URL.
type Fetcher struct {
	http     *http.Client
	maxBytes int64
}

// NewFetcher creates a Fetcher with the default size cap.
func NewFetcher() *Fetcher {
	return &Fetcher{
		http:     &http.Client{Timeout: 30 * time.Second},
		maxBytes: defaultMaxImageBytes,
	}
}

// Fetch downloads the content at url, refusing bodies over the size cap.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("fetch %s: body exceeds %d bytes", url, f.maxBytes)
	}
	return data, nil
}
