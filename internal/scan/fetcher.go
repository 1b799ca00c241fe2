package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

const (
	minBars     = 5  // below this, derived metrics are meaningless
	avgWindow   = 20 // trading days for averages and ranges
	trendWindow = 5  // trading days for the volume trend numerator

	// 유통주식 비율: 한국 시장 평균적으로 상장주식의 약 30%가 실제 유통
	floatShareRatio = 0.3

	// 상장주식수를 못 구한 경우 평균 거래량 기반 추정
	// (일평균 회전율을 유통주식의 2% 정도로 가정)
	floatFallbackMultiple = 50
)

// Fetcher turns raw price history into derived snapshots, with caching.
type Fetcher struct {
	provider contracts.MarketDataProvider
	cache    *SnapshotCache
	logger   *logger.Logger
}

// NewFetcher creates a new snapshot fetcher
func NewFetcher(provider contracts.MarketDataProvider, cache *SnapshotCache, log *logger.Logger) *Fetcher {
	return &Fetcher{
		provider: provider,
		cache:    cache,
		logger:   log,
	}
}

// Fetch returns a derived snapshot for the code, from cache when fresh.
// Failed fetches are never cached.
func (f *Fetcher) Fetch(ctx context.Context, code string) (*contracts.Snapshot, error) {
	if snapshot, ok := f.cache.Get(code); ok {
		return snapshot, nil
	}

	history, err := f.provider.FetchHistory(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", code, err)
	}

	snapshot, err := deriveSnapshot(history)
	if err != nil {
		return nil, fmt.Errorf("failed to derive snapshot for %s: %w", code, err)
	}

	f.cache.Put(code, snapshot)
	return snapshot, nil
}

// deriveSnapshot computes all scan inputs from raw daily bars.
func deriveSnapshot(history *contracts.RawHistory) (*contracts.Snapshot, error) {
	bars := history.Bars
	if len(bars) < minBars {
		return nil, fmt.Errorf("insufficient history: %d bars (need %d)", len(bars), minBars)
	}

	latest := bars[len(bars)-1]
	prev := bars[len(bars)-2]

	price := latest.Close
	changePct := 0.0
	if prev.Close > 0 {
		changePct = (latest.Close - prev.Close) / prev.Close * 100
	}

	window := bars
	if len(window) > avgWindow {
		window = window[len(window)-avgWindow:]
	}

	var volumeSum, tradingValueSum, high20, low20 float64
	low20 = window[0].Low
	for _, b := range window {
		volumeSum += float64(b.Volume)
		tradingValueSum += b.Close * float64(b.Volume)
		if b.High > high20 {
			high20 = b.High
		}
		if b.Low < low20 {
			low20 = b.Low
		}
	}
	avgVolume := volumeSum / float64(len(window))
	avgTradingValue := tradingValueSum / float64(len(window))

	volumeRatio := 1.0
	if avgVolume > 0 {
		volumeRatio = float64(latest.Volume) / avgVolume
	}

	// 거래량 추세: 최근 5일 평균 / 직전 5일 평균
	volumeTrend := 1.0
	if len(bars) >= 2*trendWindow {
		recent := meanVolume(bars[len(bars)-trendWindow:])
		prior := meanVolume(bars[len(bars)-2*trendWindow : len(bars)-trendWindow])
		if prior > 0 {
			volumeTrend = recent / prior
		}
	}

	floatShares := float64(history.SharesOutstanding) * floatShareRatio
	if floatShares <= 0 {
		floatShares = avgVolume * floatFallbackMultiple
	}

	turnoverPct := 0.0
	if floatShares > 0 {
		turnoverPct = float64(latest.Volume) / floatShares * 100
	}

	var volume5d float64
	for _, b := range bars[len(bars)-trendWindow:] {
		volume5d += float64(b.Volume)
	}
	turnover5dPct := 0.0
	if floatShares > 0 {
		turnover5dPct = volume5d / floatShares * 100
	}

	marketCap := history.MarketCap
	if marketCap <= 0 && history.SharesOutstanding > 0 {
		marketCap = price * float64(history.SharesOutstanding)
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	return &contracts.Snapshot{
		Code:              history.Code,
		Name:              history.Name,
		Price:             price,
		PrevClose:         prev.Close,
		ChangePct:         changePct,
		Volume:            latest.Volume,
		AvgVolume:         int64(avgVolume),
		VolumeRatio:       volumeRatio,
		VolumeTrend:       volumeTrend,
		TurnoverPct:       turnoverPct,
		Turnover5DPct:     turnover5dPct,
		TradingValue:      price * float64(latest.Volume),
		AvgTradingValue:   avgTradingValue,
		MarketCap:         marketCap,
		SharesOutstanding: history.SharesOutstanding,
		FloatShares:       floatShares,
		High20:            high20,
		Low20:             low20,
		Closes:            closes,
		PBR:               history.PBR,
		FetchedAt:         time.Now(),
	}, nil
}

func meanVolume(bars []contracts.Bar) float64 {
	if len(bars) == 0 {
		return 0
	}
	var sum float64
	for _, b := range bars {
		sum += float64(b.Volume)
	}
	return sum / float64(len(bars))
}
