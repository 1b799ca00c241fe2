package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/vulture/internal/contracts"
)

func TestAdmitBoundaryInclusive(t *testing.T) {
	s := &contracts.Snapshot{
		AvgTradingValue: 300_000_000,
		VolumeRatio:     1.3,
		Price:           300,
	}
	assert.True(t, Admit(s), "exact thresholds should be admitted")
}

func TestAdmitRejections(t *testing.T) {
	base := contracts.Snapshot{
		AvgTradingValue: 500_000_000,
		VolumeRatio:     2.0,
		Price:           1000,
	}

	tests := []struct {
		name   string
		mutate func(*contracts.Snapshot)
	}{
		{"trading value below floor", func(s *contracts.Snapshot) { s.AvgTradingValue = 299_999_999 }},
		{"volume ratio below floor", func(s *contracts.Snapshot) { s.VolumeRatio = 1.29 }},
		{"penny stock", func(s *contracts.Snapshot) { s.Price = 299 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			assert.False(t, Admit(&s))
		})
	}

	passing := base
	assert.True(t, Admit(&passing))
}
