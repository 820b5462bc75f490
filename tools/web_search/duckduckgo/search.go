package duckduckgo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mohammad-safakhou/gazeta/tools/web_search/models"
)

// Search scrapes the DuckDuckGo HTML endpoint. No API key required.
type Search struct{}

func (s Search) Search(ctx context.Context, q string, k int) ([]models.Result, error) {
	endpoint := "https://html.duckduckgo.com/html/?q=" + url.QueryEscape(q)
	req, _ := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; gazeta/1.0)")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var out []models.Result
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		out = append(out, models.Result{
			URL:   resolveRedirect(href),
			Title: strings.TrimSpace(link.Text()),
		})
		return len(out) < k
	})
	return out, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" {
		return "https:" + href
	}
	return href
}
