package naver

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/config"
	"github.com/wonny/vulture/pkg/httputil"
	"github.com/wonny/vulture/pkg/logger"
)

// Client handles communication with Naver Finance
// ⭐ SSOT: Naver Finance API 호출은 이 클라이언트에서만
type Client struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	chartBaseURL string
	stockBaseURL string
	newsBaseURL  string
	lookbackDays int
}

// NewClient creates a new Naver Finance client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient:   httpClient,
		logger:       log,
		chartBaseURL: cfg.Naver.ChartBaseURL,
		stockBaseURL: cfg.Naver.StockBaseURL,
		newsBaseURL:  cfg.Naver.NewsBaseURL,
		lookbackDays: cfg.Scan.LookbackDays,
	}
}

// FetchHistory implements contracts.MarketDataProvider: daily bars over the
// lookback window plus static metadata. Any upstream failure drops the
// instrument from the current scan; metadata failure alone does not.
func (c *Client) FetchHistory(ctx context.Context, code string) (*contracts.RawHistory, error) {
	bars, err := c.FetchDailyBars(ctx, code, c.lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	history := &contracts.RawHistory{
		Code: code,
		Name: code,
		Bars: bars,
	}

	info, err := c.FetchStockInfo(ctx, code)
	if err != nil {
		// Metadata is best-effort: scoring degrades to its zero branches
		c.logger.WithError(err).WithField("code", code).Debug("Stock info unavailable")
		return history, nil
	}

	if info.Name != "" {
		history.Name = info.Name
	}
	history.SharesOutstanding = info.SharesOutstanding
	history.MarketCap = info.MarketCap
	history.PBR = info.PBR

	return history, nil
}

// fetchBody fetches a URL and returns the response body
func (c *Client) fetchBody(ctx context.Context, fullURL string, headers map[string]string) ([]byte, error) {
	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, headers)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	return body, nil
}
