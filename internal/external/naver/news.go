package naver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/vulture/internal/contracts"
)

// Search implements contracts.NewsProvider against Naver news search.
// Returned items carry raw titles only; keyword classification is the
// scorer's job.
// ⭐ SSOT: 뉴스 검색은 이 함수에서만
func (c *Client) Search(ctx context.Context, query string) ([]contracts.NewsItem, error) {
	fullURL := fmt.Sprintf("%s/search.naver?where=news&query=%s&sort=1",
		c.newsBaseURL, url.QueryEscape(query))

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("news search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse news search page: %w", err)
	}

	var items []contracts.NewsItem
	seen := map[string]bool{}

	doc.Find("a.news_tit").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		if title == "" {
			// Some layouts put the headline in the title attribute
			title = strings.TrimSpace(sel.AttrOr("title", ""))
		}
		if len([]rune(title)) < 5 || seen[title] {
			return
		}
		seen[title] = true

		items = append(items, contracts.NewsItem{
			Title:    title,
			URL:      sel.AttrOr("href", ""),
			Source:   "네이버뉴스",
			Severity: contracts.SeverityNone,
		})
	})

	c.logger.WithFields(map[string]interface{}{
		"query": query,
		"count": len(items),
	}).Debug("Searched news")

	return items, nil
}
