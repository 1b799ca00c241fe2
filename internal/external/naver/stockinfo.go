package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StockInfo holds static descriptive metadata for one stock
type StockInfo struct {
	Code              string
	Name              string
	MarketCap         float64 // 원
	SharesOutstanding int64
	PBR               float64
}

// integrationResponse is the m.stock.naver.com integration API shape.
// totalInfos carries labelled key/value pairs with formatted numbers.
type integrationResponse struct {
	StockName  string `json:"stockName"`
	ItemCode   string `json:"itemCode"`
	TotalInfos []struct {
		Code  string `json:"code"`
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"totalInfos"`
}

// FetchStockInfo fetches name, market cap, listed shares and PBR
// ⭐ SSOT: Naver 종목 메타데이터 호출은 이 함수에서만
func (c *Client) FetchStockInfo(ctx context.Context, stockCode string) (*StockInfo, error) {
	fullURL := fmt.Sprintf("%s/api/stock/%s/integration", c.stockBaseURL, stockCode)

	body, err := c.fetchBody(ctx, fullURL, nil)
	if err != nil {
		return nil, err
	}

	var parsed integrationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode integration response: %w", err)
	}

	info := &StockInfo{
		Code: stockCode,
		Name: parsed.StockName,
	}

	for _, item := range parsed.TotalInfos {
		switch item.Code {
		case "marketValue":
			// "12조 3,456억" 또는 "1,234억" 형식
			info.MarketCap = parseKoreanCurrency(item.Value)
		case "stockCnt", "listedStockCnt":
			info.SharesOutstanding = int64(parseFormattedNumber(item.Value))
		case "pbr":
			info.PBR = parseFormattedNumber(item.Value)
		}
	}

	return info, nil
}

// parseFormattedNumber parses "1,234.56배" style values
func parseFormattedNumber(s string) float64 {
	cleaned := strings.ReplaceAll(s, ",", "")
	cleaned = strings.TrimFunc(cleaned, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '.' && r != '-'
	})
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseKoreanCurrency parses "12조 3,456억" style amounts into 원
func parseKoreanCurrency(s string) float64 {
	var total float64

	if idx := strings.Index(s, "조"); idx >= 0 {
		total += parseFormattedNumber(s[:idx]) * 1e12
		s = s[idx+len("조"):]
	}
	if idx := strings.Index(s, "억"); idx >= 0 {
		total += parseFormattedNumber(s[:idx]) * 1e8
		s = s[idx+len("억"):]
	}

	if total == 0 {
		// Plain number, assume 원
		total = parseFormattedNumber(s)
	}

	return total
}
