// Package fetcher retrieves raw page/document text over HTTP with a bounded
// retry budget.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"intern-watch/internal/config"
	"intern-watch/internal/observability"
)

// FetchError is returned after every attempt for a URL has failed. It wraps
// the error from the last attempt.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Fetcher struct {
	client *http.Client
	cfg    *config.Config
	logger *observability.Logger
}

func NewFetcher(cfg *config.Config, logger *observability.Logger) *Fetcher {
	client := &http.Client{
		Timeout: cfg.GetHTTPTimeout(),
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Fetcher{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch GETs urlStr with up to retries+1 attempts and a fixed delay between
// them. The final attempt switches to the secondary client identity
// (alternate user-agent and referrer). Any transport error or non-2xx status
// fails the attempt; the first success returns the body.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string, extraHeaders map[string]string) (string, error) {
	attempts := f.cfg.HTTP.Retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(f.cfg.GetRetryDelay()):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		body, err := f.fetchOnce(ctx, urlStr, extraHeaders, attempt == attempts)
		if err != nil {
			lastErr = err
			f.logger.Warn("fetch attempt failed",
				"url", urlStr,
				"attempt", attempt,
				"attempts", attempts,
				"error", err.Error(),
			)
			continue
		}
		return body, nil
	}

	return "", &FetchError{URL: urlStr, Attempts: attempts, Err: lastErr}
}

func (f *Fetcher) fetchOnce(ctx context.Context, urlStr string, extraHeaders map[string]string, final bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if f.cfg.HTTP.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.cfg.HTTP.AcceptLanguage)
	}
	if final {
		req.Header.Set("User-Agent", f.cfg.HTTP.SecondaryUserAgent)
		req.Header.Set("Referer", f.cfg.HTTP.SecondaryReferer)
	} else {
		req.Header.Set("User-Agent", f.cfg.HTTP.UserAgent)
		req.Header.Set("Referer", f.cfg.HTTP.Referer)
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("failed to close response body", "url", urlStr, "error", err.Error())
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return string(body), nil
}
