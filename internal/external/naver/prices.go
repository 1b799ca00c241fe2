package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/vulture/internal/contracts"
)

// FetchDailyBars fetches daily OHLCV bars for a stock from Naver Finance
// ⭐ SSOT: Naver Finance 차트 API 호출은 이 함수에서만
func (c *Client) FetchDailyBars(ctx context.Context, stockCode string, days int) ([]contracts.Bar, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -days)

	fromStr := from.Format("20060102")
	toStr := to.Format("20060102")

	// Naver Finance Chart API
	fullURL := fmt.Sprintf(
		"%s/siseJson.naver?symbol=%s&requestType=1&startTime=%s&endTime=%s&timeframe=day",
		c.chartBaseURL, stockCode, fromStr, toStr,
	)

	body, err := c.fetchBody(ctx, fullURL, map[string]string{
		"Referer": "https://finance.naver.com/",
	})
	if err != nil {
		return nil, err
	}

	bars, err := c.parseChartResponse(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"stock_code": stockCode,
		"count":      len(bars),
	}).Debug("Fetched daily bars")
	return bars, nil
}

// parseChartResponse parses the Naver Finance chart response
func (c *Client) parseChartResponse(body string) ([]contracts.Bar, error) {
	body = strings.TrimSpace(body)
	body = strings.ReplaceAll(body, "'", "\"")

	// Try JSON parsing first
	var rawData [][]interface{}
	if err := json.Unmarshal([]byte(body), &rawData); err == nil {
		return c.parseChartJSON(rawData)
	}

	// Fallback to regex parsing
	return c.parseChartRegex(body)
}

// parseChartJSON parses JSON array format
func (c *Client) parseChartJSON(rawData [][]interface{}) ([]contracts.Bar, error) {
	var bars []contracts.Bar
	for i, row := range rawData {
		if i == 0 || len(row) < 6 {
			continue // Skip header
		}

		dateStr, ok := row[0].(string)
		if !ok {
			continue
		}
		dateStr = strings.Trim(dateStr, "\"")
		if len(dateStr) == 8 {
			dateStr = dateStr[:4] + "-" + dateStr[4:6] + "-" + dateStr[6:8]
		}

		tradeDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		bars = append(bars, contracts.Bar{
			Date:   tradeDate,
			Open:   toFloat(row[1]),
			High:   toFloat(row[2]),
			Low:    toFloat(row[3]),
			Close:  toFloat(row[4]),
			Volume: int64(toFloat(row[5])),
		})
	}
	return bars, nil
}

var chartRowPattern = regexp.MustCompile(`\["(\d{8})",\s*(\d+),\s*(\d+),\s*(\d+),\s*(\d+),\s*(\d+)\]`)

// parseChartRegex parses using regex (fallback)
func (c *Client) parseChartRegex(body string) ([]contracts.Bar, error) {
	matches := chartRowPattern.FindAllStringSubmatch(body, -1)

	var bars []contracts.Bar
	for _, match := range matches {
		if len(match) < 7 {
			continue
		}

		dateStr := match[1][:4] + "-" + match[1][4:6] + "-" + match[1][6:8]
		tradeDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		open, _ := strconv.ParseFloat(match[2], 64)
		high, _ := strconv.ParseFloat(match[3], 64)
		low, _ := strconv.ParseFloat(match[4], 64)
		closePrice, _ := strconv.ParseFloat(match[5], 64)
		volume, _ := strconv.ParseInt(match[6], 10, 64)

		bars = append(bars, contracts.Bar{
			Date:   tradeDate,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("no price rows found in response")
	}
	return bars, nil
}

// toFloat converts a JSON value (number or numeric string) to float64
func toFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		cleaned := strings.ReplaceAll(strings.Trim(val, "\""), ",", "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
