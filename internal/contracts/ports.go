package contracts

import (
	"context"
	"time"
)

// Bar is one daily OHLCV bar
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// RawHistory is the upstream provider's view of one instrument: daily bars
// (oldest to newest) plus static descriptive metadata
type RawHistory struct {
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	Bars              []Bar   `json:"bars"`
	SharesOutstanding int64   `json:"shares_outstanding"`
	MarketCap         float64 `json:"market_cap"`
	PBR               float64 `json:"pbr"`
}

// MarketDataProvider fetches one instrument's recent history and metadata.
// A nil history with a non-nil error means the instrument is dropped from
// the current scan; no retry happens within a scan.
type MarketDataProvider interface {
	FetchHistory(ctx context.Context, code string) (*RawHistory, error)
}

// UniverseProvider resolves a named market segment to a code list
type UniverseProvider interface {
	BySegment(ctx context.Context, segment string) ([]string, error)
}

// NewsProvider searches free-text news. The M&A news score is a pure
// function of the returned items, independent of how they were obtained.
type NewsProvider interface {
	Search(ctx context.Context, query string) ([]NewsItem, error)
}

// ProgressFunc is a fire-and-forget progress callback invoked after each
// fetch batch; purely observational, never affects correctness
type ProgressFunc func(completed, total int, label string)
