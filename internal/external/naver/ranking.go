package naver

import (
	"context"
	"encoding/json"
	"fmt"
)

// listResponse is the m.stock.naver.com stock list API shape
type listResponse struct {
	TotalCount int `json:"totalCount"`
	Stocks     []struct {
		ItemCode  string `json:"itemCode"`
		StockName string `json:"stockName"`
	} `json:"stocks"`
}

const listPageSize = 100

// FetchMarketCodes fetches every listed code for a market (KOSPI/KOSDAQ),
// paging through the market-value listing
// ⭐ SSOT: 시장별 종목 리스트 호출은 이 함수에서만
func (c *Client) FetchMarketCodes(ctx context.Context, market string) ([]string, error) {
	codes := []string{}

	// KOSPI/KOSDAQ each list under ~2000 stocks
	maxPages := 25
	for page := 1; page <= maxPages; page++ {
		fullURL := fmt.Sprintf("%s/api/stocks/marketValue/%s?page=%d&pageSize=%d",
			c.stockBaseURL, market, page, listPageSize)

		body, err := c.fetchBody(ctx, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("fetch listing page %d: %w", page, err)
		}

		var parsed listResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("decode listing page %d: %w", page, err)
		}

		if len(parsed.Stocks) == 0 {
			break
		}

		for _, item := range parsed.Stocks {
			codes = append(codes, item.ItemCode)
		}

		if len(codes) >= parsed.TotalCount {
			break
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"market": market,
		"count":  len(codes),
	}).Debug("Fetched market codes")

	return codes, nil
}

// FetchVolumeSurgeCodes fetches codes from the volume-surge ranking, used by
// the quick scan mode to prioritize instruments that are already moving
func (c *Client) FetchVolumeSurgeCodes(ctx context.Context, limit int) ([]string, error) {
	fullURL := fmt.Sprintf("%s/api/stocks/quantHigh/all?page=1&pageSize=%d",
		c.stockBaseURL, limit)

	body, err := c.fetchBody(ctx, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch volume surge ranking: %w", err)
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode volume surge ranking: %w", err)
	}

	codes := make([]string, 0, len(parsed.Stocks))
	for _, item := range parsed.Stocks {
		codes = append(codes, item.ItemCode)
	}

	c.logger.WithField("count", len(codes)).Debug("Fetched volume surge codes")
	return codes, nil
}
