package scan

import (
	"sort"

	"github.com/wonny/vulture/internal/contracts"
)

// Classify assigns final tiers and returns signals in display order.
//
// Ordering is total score descending with code ascending as the tie break,
// so identical inputs always classify identically. At most MaxLockons
// signals hold the 🎯 tier; any further 60+ scorers are demoted to High,
// never skipped. Because demotion follows the sorted order, every Lockon
// outscores (or ties) every demoted signal.
func Classify(signals []contracts.Signal) []contracts.Signal {
	sorted := make([]contracts.Signal, len(signals))
	copy(sorted, signals)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Total != sorted[j].Total {
			return sorted[i].Total > sorted[j].Total
		}
		return sorted[i].Code < sorted[j].Code
	})

	lockons := 0
	for i := range sorted {
		tier := contracts.ProvisionalTier(sorted[i].Total)
		if tier == contracts.TierLockon {
			if lockons < contracts.MaxLockons {
				lockons++
			} else {
				tier = contracts.TierHigh
			}
		}
		sorted[i].Tier = tier
	}

	return sorted
}
