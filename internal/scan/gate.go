package scan

import "github.com/wonny/vulture/internal/contracts"

// Admission thresholds. All boundaries are inclusive.
const (
	MinAvgTradingValue = 300_000_000 // 일평균 거래대금 3억원
	MinVolumeRatio     = 1.3
	MinPrice           = 300 // 동전주 제외
)

// Admit reports whether a snapshot clears the liquidity gate and is worth
// scoring at all. Rejected instruments produce no signal.
func Admit(s *contracts.Snapshot) bool {
	return s.AvgTradingValue >= MinAvgTradingValue &&
		s.VolumeRatio >= MinVolumeRatio &&
		s.Price >= MinPrice
}
