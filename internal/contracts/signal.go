package contracts

import "time"

// Tier is the ordinal alert bucket for accumulation signals
type Tier string

const (
	TierLockon Tier = "LOCKON" // 🔴 최고 레벨 - 즉시 통지
	TierHigh   Tier = "HIGH"   // 🟠 요주의
	TierMedium Tier = "MEDIUM" // 🟡 계속 감시
	TierLow    Tier = "LOW"    // 🟢 평상
)

// Accumulation score thresholds for provisional tier assignment.
// The Lockon tier additionally carries a population cap applied over the
// whole scan batch, not per instrument (see scan.Classifier).
const (
	LockonThreshold = 60
	HighThreshold   = 45
	MediumThreshold = 30

	// MaxLockons is the hard cap on the most urgent tier per scan
	MaxLockons = 5
)

// ProvisionalTier maps a total score to its threshold tier, before the
// batch-level Lockon cap is applied
func ProvisionalTier(total int) Tier {
	switch {
	case total >= LockonThreshold:
		return TierLockon
	case total >= HighThreshold:
		return TierHigh
	case total >= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// FactorScoreSet holds the accumulation detector's sub-scores for one
// instrument. Each group is the sum of its two largest candidate tier
// values, capped at the group maximum; the bonus is purely additive.
type FactorScoreSet struct {
	Stealth        int `json:"stealth_score"`         // 0-35
	Board          int `json:"board_score"`           // 0-35
	VolumeCritical int `json:"volume_critical_score"` // 0-30
	Bonus          int `json:"bonus_score"`           // 0-15
	Total          int `json:"total_score"`           // min(100, sum)

	// Reasons lists every candidate that fired, whether or not it was one
	// of the two selected: tags reflect what was observed, scores reflect
	// what counted.
	Reasons []string `json:"reasons"`
}

// Signal is the externally visible scan result for one instrument.
// Owned exclusively by the scan result list; never mutated after creation.
type Signal struct {
	Code string `json:"code"`
	Name string `json:"name"`

	FactorScoreSet

	Tier Tier `json:"tier"`

	// Snapshot fields echoed for display
	Price       float64 `json:"price"`
	ChangePct   float64 `json:"change_pct"`
	VolumeRatio float64 `json:"volume_ratio"`
	TurnoverPct float64 `json:"turnover_pct"`
	MarketCap   float64 `json:"market_cap"`

	DetectedAt time.Time `json:"detected_at"`
}
