// Package search provides the live web-search client used by the web
// verification backend. It queries DuckDuckGo's HTML endpoint, which needs no
// API key, and scrapes the result list.
package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultBaseURL = "https://html.duckduckgo.com/html/"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Result is one search hit in result-page order.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// DuckDuckGo is a keyless web-search client.
type DuckDuckGo struct {
	baseURL string
	client  *http.Client
}

// NewDuckDuckGo creates a search client. baseURL overrides the endpoint for
// testing; pass "" for the default.
func NewDuckDuckGo(baseURL string) *DuckDuckGo {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &DuckDuckGo{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Search runs one text query and returns up to maxResults hits.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search page: %w", err)
	}

	return parseResults(doc, maxResults), nil
}

func parseResults(doc *goquery.Document, maxResults int) []Result {
	var results []Result
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(s.Find(".result__snippet").First().Text())

		results = append(results, Result{
			Title:   title,
			URL:     resolveRedirect(href),
			Snippet: snippet,
		})
		return maxResults <= 0 || len(results) < maxResults
	})
	return results
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<encoded> redirect links into
// the destination URL.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if dest := u.Query().Get("uddg"); dest != "" {
		return dest
	}
	return href
}
