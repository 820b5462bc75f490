package chromedp

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-shiori/go-readability"

	"github.com/mohammad-safakhou/gazeta/internal/helpers"
	"github.com/mohammad-safakhou/gazeta/internal/telemetry"
)

// Fetch loads a page in a fresh headless browser session per call. The
// allocator, browser context and page are torn down on every exit path;
// correctness over throughput is the tradeoff.
type Fetch struct {
	Timeout  time.Duration
	MaxChars int
	Logger   *log.Logger
}

// Fetch returns the rendered visible text of the document body with
// whitespace collapsed. Navigation and render errors are logged and yield an
// empty string; only an invalid URL is an error.
func (f *Fetch) Fetch(ctx context.Context, rawURL string) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", errors.New("invalid url")
	}
	logger := f.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[FETCH] ", log.LstdFlags)
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent("gazeta/1.0 (+contact@example.com)"),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var text, html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate("document.body.innerText", &text),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		logger.Printf("fetch %s failed: %v", rawURL, err)
		telemetry.CountFetch("error")
		return "", nil
	}

	// Some pages render everything through scripts that innerText misses;
	// fall back to readability extraction over the raw HTML.
	if strings.TrimSpace(text) == "" && html != "" {
		if article, rerr := readability.FromReader(strings.NewReader(html), mustParseURL(rawURL)); rerr == nil {
			text = article.TextContent
		}
	}

	text = helpers.CollapseWhitespace(text)
	if f.MaxChars > 0 && len(text) > f.MaxChars {
		text = helpers.Clip(text, f.MaxChars)
	}
	if text == "" {
		telemetry.CountFetch("empty")
	} else {
		telemetry.CountFetch("ok")
	}
	return text, nil
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
