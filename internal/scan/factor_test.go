package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/vulture/internal/contracts"
)

func TestBestTwoOfThree(t *testing.T) {
	tests := []struct {
		name       string
		candidates [3]int
		limit      int
		want       int
	}{
		{"all fire, drop smallest", [3]int{15, 12, 10}, 35, 27},
		{"mid-tier mix", [3]int{15, 9, 7}, 30, 24},
		{"single candidate", [3]int{0, 8, 0}, 35, 8},
		{"nothing fires", [3]int{0, 0, 0}, 35, 0},
		{"two equal maxima", [3]int{12, 12, 5}, 35, 24},
		{"limit binds", [3]int{15, 15, 0}, 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c [3]candidate
			for i, score := range tt.candidates {
				c[i] = candidate{score: score}
			}
			assert.Equal(t, tt.want, bestTwoOfThree(c, tt.limit))
		})
	}
}

func TestStealthGroupDropsSmallest(t *testing.T) {
	// volumeTrend 2.0 → 15, flat price with 2x volume → 12,
	// market cap 1,000억 → 10. Best two: 15 + 12 = 27.
	s := &contracts.Snapshot{
		VolumeTrend: 2.0,
		ChangePct:   1.0,
		VolumeRatio: 2.0,
		MarketCap:   1e11,
	}

	scores := NewFactorScorer().Score(s)
	assert.Equal(t, 27, scores.Stealth)
}

func TestVolumeCriticalGroup(t *testing.T) {
	// volumeRatio 6.0 → 15, turnover 4.0% → 9, trading value 2x → 7.
	// Best two: 15 + 9 = 24.
	s := &contracts.Snapshot{
		VolumeRatio:     6.0,
		TurnoverPct:     4.0,
		TradingValue:    2e9,
		AvgTradingValue: 1e9,
	}

	scores := NewFactorScorer().Score(s)
	assert.Equal(t, 24, scores.VolumeCritical)
}

func TestBoardGroupRangePosition(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  int
	}{
		{"bottom of range", 105, 15},
		{"breakout zone", 195, 12},
		{"lower half", 135, 8},
		{"middle", 150, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &contracts.Snapshot{
				Price:  tt.price,
				High20: 200,
				Low20:  100,
			}
			c := NewFactorScorer().boardCandidates(s)
			assert.Equal(t, tt.want, c[0].score)
		})
	}
}

func TestBoardGroupFlatRangeScoresZero(t *testing.T) {
	s := &contracts.Snapshot{Price: 100, High20: 100, Low20: 100}
	c := NewFactorScorer().boardCandidates(s)
	assert.Equal(t, 0, c[0].score)
}

func TestBoardGroupBollingerNeedsHistory(t *testing.T) {
	// Fewer than 20 closes: the band candidate must stay silent.
	s := &contracts.Snapshot{
		Price:  50,
		Closes: []float64{100, 100, 100, 100, 100},
	}
	c := NewFactorScorer().boardCandidates(s)
	assert.Equal(t, 0, c[1].score)
}

func TestBoardGroupBollingerZeroSigma(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	s := &contracts.Snapshot{Price: 50, Closes: closes}
	c := NewFactorScorer().boardCandidates(s)
	assert.Equal(t, 0, c[1].score)
}

func TestBoardGroupBollingerLowerTouch(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 190
		} else {
			closes[i] = 210
		}
	}
	// sma 200, sample sigma ≈ 10.3; 150 is well below the lower band
	s := &contracts.Snapshot{Price: 150, Closes: closes}
	c := NewFactorScorer().boardCandidates(s)
	assert.Equal(t, 12, c[1].score)
}

func TestBonusCapAndConditions(t *testing.T) {
	s := &contracts.Snapshot{
		VolumeRatio: 3.0,
		TurnoverPct: 7.0,
		MarketCap:   4e10,
	}
	bonus, reasons := NewFactorScorer().bonus(s)
	assert.Equal(t, 15, bonus)
	assert.Len(t, reasons, 3)

	none, _ := NewFactorScorer().bonus(&contracts.Snapshot{VolumeRatio: 1.0})
	assert.Equal(t, 0, none)
}

func TestScoreAllGroupsMax(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 190
		} else {
			closes[i] = 210
		}
	}

	s := &contracts.Snapshot{
		Price:           105,
		ChangePct:       0,
		VolumeRatio:     10,
		VolumeTrend:     2.0,
		TurnoverPct:     10,
		TradingValue:    3e9,
		AvgTradingValue: 1e9,
		MarketCap:       5e10, // 500억
		High20:          200,
		Low20:           100,
		Closes:          closes,
	}

	scores := NewFactorScorer().Score(s)
	assert.Equal(t, 27, scores.Stealth)
	assert.Equal(t, 27, scores.Board)
	assert.Equal(t, 27, scores.VolumeCritical)
	assert.Equal(t, 15, scores.Bonus)
	assert.Equal(t, 96, scores.Total)
	assert.Len(t, scores.Reasons, 12, "every fired candidate and bonus should be tagged")
}

func TestReasonsIncludeUnselectedCandidates(t *testing.T) {
	// All three stealth candidates fire; the market cap candidate (10) is
	// dropped from the score, but its tag must still be present.
	s := &contracts.Snapshot{
		VolumeTrend: 2.0,
		ChangePct:   1.0,
		VolumeRatio: 2.0,
		MarketCap:   1e11,
	}
	scores := NewFactorScorer().Score(s)
	assert.Contains(t, scores.Reasons, "매집 적합 시총 구간(1000억)")
}

func TestStddevSample(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	m := mean(values)
	assert.InDelta(t, 5.0, m, 1e-9)
	assert.InDelta(t, 2.138, stddev(values, m), 0.001)
	assert.Equal(t, 0.0, stddev([]float64{42}, 42))
}
