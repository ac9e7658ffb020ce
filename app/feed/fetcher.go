package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const DefaultFeedURL = "https://t-sib.ru/upload/catalog.xml"

type Fetcher struct {
	httpClient *http.Client
	url        string
	userAgent  string
	timeout    time.Duration
}

func NewFetcher(httpClient *http.Client, url, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		url:        url,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Run downloads the feed once. Any failure is returned as *FetchError; there
// are no retries.
func (f *Fetcher) Run(ctx context.Context) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", f.userAgent)

	started := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: f.url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	slog.Debug("Feed fetched", "url", f.url, "bytes", len(data), "duration", time.Since(started))

	return data, nil
}
