package contracts

import "time"

// Snapshot is one instrument's point-in-time derived market state.
// ⭐ SSOT: 스캔 파이프라인의 종목 상태는 이 구조체로만 전달
//
// Ratio fields default to 1.0 and other fields to zero when upstream data is
// missing, so scoring never divides by zero. A Snapshot is immutable once the
// fetcher returns it and is discarded when the scan completes.
type Snapshot struct {
	Code string `json:"code"`
	Name string `json:"name"`

	// Latest bar
	Price     float64 `json:"price"`
	PrevClose float64 `json:"prev_close"`
	ChangePct float64 `json:"change_pct"` // vs previous close
	Volume    int64   `json:"volume"`

	// Volume derivations
	AvgVolume     int64   `json:"avg_volume"`      // trailing 20-day mean
	VolumeRatio   float64 `json:"volume_ratio"`    // volume / avg_volume
	VolumeTrend   float64 `json:"volume_trend"`    // recent-5 mean / prior-5 mean
	TurnoverPct   float64 `json:"turnover_pct"`    // volume / est. float shares * 100
	Turnover5DPct float64 `json:"turnover_5d_pct"` // 5-day cumulative turnover

	// Value derivations
	TradingValue    float64 `json:"trading_value"`     // price * volume
	AvgTradingValue float64 `json:"avg_trading_value"` // trailing 20-day mean

	// Size
	MarketCap         float64 `json:"market_cap"`
	SharesOutstanding int64   `json:"shares_outstanding"`
	FloatShares       float64 `json:"float_shares"` // estimated

	// Lookback window
	High20 float64   `json:"high_20"`
	Low20  float64   `json:"low_20"`
	Closes []float64 `json:"-"` // oldest to newest, for band/position computations

	// Externally supplied valuation inputs (fair-value engine, chart signal).
	// Zero values degrade the corresponding M&A sub-scores to zero.
	PBR                float64 `json:"pbr"`
	FairValueUpsidePct float64 `json:"fair_value_upside_pct"`
	TechnicalSignal    string  `json:"technical_signal"`

	FetchedAt time.Time `json:"fetched_at"`
}
