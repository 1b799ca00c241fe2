package scan

import (
	"fmt"
	"math"

	"github.com/wonny/vulture/internal/contracts"
)

// Group caps. Each group takes the two strongest of its three candidate
// sub-scores, so one loud sub-signal can never carry a group alone.
const (
	stealthCap        = 35
	boardCap          = 35
	volumeCriticalCap = 30
	bonusCap          = 15
	totalCap          = 100
)

type candidate struct {
	score  int
	reason string
}

// FactorScorer scores an admitted snapshot on the three accumulation
// footprint groups.
// ⭐ SSOT: 매집 흔적 점수 계산은 이 구조체에서만
type FactorScorer struct{}

// NewFactorScorer creates a new FactorScorer
func NewFactorScorer() *FactorScorer {
	return &FactorScorer{}
}

// Score computes the factor score set for a snapshot. Reasons include every
// candidate that fired, whether or not it made the best-two cut.
func (fs *FactorScorer) Score(s *contracts.Snapshot) contracts.FactorScoreSet {
	var reasons []string

	stealth := fs.stealthCandidates(s)
	board := fs.boardCandidates(s)
	volume := fs.volumeCandidates(s)

	stealthScore := bestTwoOfThree(stealth, stealthCap)
	boardScore := bestTwoOfThree(board, boardCap)
	volumeScore := bestTwoOfThree(volume, volumeCriticalCap)

	for _, group := range [][3]candidate{stealth, board, volume} {
		for _, c := range group {
			if c.score > 0 {
				reasons = append(reasons, c.reason)
			}
		}
	}

	bonus, bonusReasons := fs.bonus(s)
	reasons = append(reasons, bonusReasons...)

	total := stealthScore + boardScore + volumeScore + bonus
	if total > totalCap {
		total = totalCap
	}

	return contracts.FactorScoreSet{
		Stealth:        stealthScore,
		Board:          boardScore,
		VolumeCritical: volumeScore,
		Bonus:          bonus,
		Total:          total,
		Reasons:        reasons,
	}
}

// stealthCandidates detects quiet accumulation: rising volume without the
// price moving, in a market cap band where a buyer can actually hide.
func (fs *FactorScorer) stealthCandidates(s *contracts.Snapshot) [3]candidate {
	var c [3]candidate

	switch {
	case s.VolumeTrend >= 1.8:
		c[0] = candidate{15, fmt.Sprintf("거래량 5일 추세 %.1f배 급증", s.VolumeTrend)}
	case s.VolumeTrend >= 1.4:
		c[0] = candidate{10, fmt.Sprintf("거래량 5일 추세 %.1f배 증가", s.VolumeTrend)}
	case s.VolumeTrend >= 1.2:
		c[0] = candidate{5, fmt.Sprintf("거래량 5일 추세 %.1f배 완만 증가", s.VolumeTrend)}
	}

	absChange := math.Abs(s.ChangePct)
	switch {
	case absChange < 2.0 && s.VolumeRatio >= 1.8:
		c[1] = candidate{12, fmt.Sprintf("주가 보합(%.1f%%) 속 거래량 %.1f배", s.ChangePct, s.VolumeRatio)}
	case absChange < 3.0 && s.VolumeRatio >= 1.5:
		c[1] = candidate{8, fmt.Sprintf("주가 소폭 변동(%.1f%%) 속 거래량 %.1f배", s.ChangePct, s.VolumeRatio)}
	case s.VolumeRatio >= 1.3:
		c[1] = candidate{4, fmt.Sprintf("거래량 평소 대비 %.1f배", s.VolumeRatio)}
	}

	oku := s.MarketCap / 1e8
	switch {
	case oku >= 300 && oku <= 3000:
		c[2] = candidate{10, fmt.Sprintf("매집 적합 시총 구간(%.0f억)", oku)}
	case (oku >= 100 && oku < 300) || (oku > 3000 && oku <= 5000):
		c[2] = candidate{6, fmt.Sprintf("매집 가능 시총 구간(%.0f억)", oku)}
	}

	return c
}

// boardCandidates detects price positioned at the edge of its recent range,
// where accumulation or distribution shows up first.
func (fs *FactorScorer) boardCandidates(s *contracts.Snapshot) [3]candidate {
	var c [3]candidate

	if s.High20 > s.Low20 {
		pos := (s.Price - s.Low20) / (s.High20 - s.Low20)
		switch {
		case pos <= 0.2:
			c[0] = candidate{15, fmt.Sprintf("20일 저점권 위치(%.0f%%)", pos*100)}
		case pos >= 0.9:
			c[0] = candidate{12, fmt.Sprintf("20일 고점 돌파권(%.0f%%)", pos*100)}
		case pos <= 0.4:
			c[0] = candidate{8, fmt.Sprintf("20일 하단권 위치(%.0f%%)", pos*100)}
		}
	}

	if len(s.Closes) >= 20 {
		window := s.Closes[len(s.Closes)-20:]
		sma20 := mean(window)
		sigma := stddev(window, sma20)
		if sigma > 0 {
			switch {
			case s.Price <= sma20-2*sigma:
				c[1] = candidate{12, "볼린저 하단 터치"}
			case s.Price >= sma20+2*sigma:
				c[1] = candidate{10, "볼린저 상단 돌파"}
			case s.Price <= sma20-sigma:
				c[1] = candidate{6, "볼린저 하단권 접근"}
			}
		}
	}

	if len(s.Closes) >= 5 {
		ma5 := mean(s.Closes[len(s.Closes)-5:])
		if ma5 > 0 {
			dev := (s.Price - ma5) / ma5 * 100
			switch {
			case dev >= 5.0:
				c[2] = candidate{10, fmt.Sprintf("5일선 +%.1f%% 이격", dev)}
			case dev <= -5.0:
				c[2] = candidate{10, fmt.Sprintf("5일선 %.1f%% 이격", dev)}
			case math.Abs(dev) >= 2.0:
				c[2] = candidate{5, fmt.Sprintf("5일선 %.1f%% 이격", dev)}
			}
		}
	}

	return c
}

// volumeCandidates detects outright volume anomalies.
func (fs *FactorScorer) volumeCandidates(s *contracts.Snapshot) [3]candidate {
	var c [3]candidate

	switch {
	case s.VolumeRatio >= 3.0:
		c[0] = candidate{15, fmt.Sprintf("거래량 폭증 %.1f배", s.VolumeRatio)}
	case s.VolumeRatio >= 2.0:
		c[0] = candidate{12, fmt.Sprintf("거래량 급증 %.1f배", s.VolumeRatio)}
	case s.VolumeRatio >= 1.5:
		c[0] = candidate{8, fmt.Sprintf("거래량 증가 %.1f배", s.VolumeRatio)}
	case s.VolumeRatio >= 1.3:
		c[0] = candidate{4, fmt.Sprintf("거래량 소폭 증가 %.1f배", s.VolumeRatio)}
	}

	switch {
	case s.TurnoverPct >= 6.0:
		c[1] = candidate{12, fmt.Sprintf("유통주식 회전율 %.1f%%", s.TurnoverPct)}
	case s.TurnoverPct >= 3.0:
		c[1] = candidate{9, fmt.Sprintf("유통주식 회전율 %.1f%%", s.TurnoverPct)}
	case s.TurnoverPct >= 1.5:
		c[1] = candidate{5, fmt.Sprintf("유통주식 회전율 %.1f%%", s.TurnoverPct)}
	}

	tvRatio := 1.0
	if s.AvgTradingValue > 0 {
		tvRatio = s.TradingValue / s.AvgTradingValue
	}
	switch {
	case tvRatio >= 2.5:
		c[2] = candidate{10, fmt.Sprintf("거래대금 평소 대비 %.1f배", tvRatio)}
	case tvRatio >= 1.8:
		c[2] = candidate{7, fmt.Sprintf("거래대금 평소 대비 %.1f배", tvRatio)}
	case tvRatio >= 1.3:
		c[2] = candidate{4, fmt.Sprintf("거래대금 평소 대비 %.1f배", tvRatio)}
	}

	return c
}

// bonus adds flat extras for conditions that amplify every group.
func (fs *FactorScorer) bonus(s *contracts.Snapshot) (int, []string) {
	bonus := 0
	var reasons []string

	if s.VolumeRatio >= 2.5 {
		bonus += 5
		reasons = append(reasons, "보너스: 거래량 2.5배 이상")
	}
	if s.TurnoverPct >= 6.0 {
		bonus += 5
		reasons = append(reasons, "보너스: 회전율 6% 이상")
	}
	if s.MarketCap > 0 && s.MarketCap <= 5e10 && s.VolumeRatio >= 1.5 {
		bonus += 5
		reasons = append(reasons, "보너스: 소형주 거래량 증가")
	}

	if bonus > bonusCap {
		bonus = bonusCap
	}
	return bonus, reasons
}

// bestTwoOfThree sums the two largest candidate scores, capped.
func bestTwoOfThree(c [3]candidate, limit int) int {
	minIdx := 0
	for i := 1; i < 3; i++ {
		if c[i].score < c[minIdx].score {
			minIdx = i
		}
	}
	sum := 0
	for i := 0; i < 3; i++ {
		if i != minIdx {
			sum += c[i].score
		}
	}
	if sum > limit {
		sum = limit
	}
	return sum
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the sample standard deviation around a precomputed mean.
func stddev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
