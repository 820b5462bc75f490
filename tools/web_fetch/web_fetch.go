package web_fetch

import (
	"context"
	"fmt"
	"time"

	cdp "github.com/mohammad-safakhou/gazeta/tools/web_fetch/chromedp"
)

const (
	DefaultTimeout  = 30 * time.Second
	MaxCharsDefault = 20000
)

// WebFetcher retrieves a page's visible text. A failed navigation or render
// yields an empty string, not an error; callers discard empty content.
type WebFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type FetcherType string

const (
	ChromedpFetcherType FetcherType = "chromedp"
)

func NewWebFetcher(fetcherType FetcherType, timeout time.Duration, maxChars int) (WebFetcher, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxChars <= 0 {
		maxChars = MaxCharsDefault
	}

	switch fetcherType {
	case ChromedpFetcherType:
		return &cdp.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	default:
		return nil, fmt.Errorf("unsupported fetcher type: %s", fetcherType)
	}
}
