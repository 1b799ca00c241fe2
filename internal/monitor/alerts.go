package monitor

import (
	"fmt"
	"time"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/config"
)

// AlertRule names why an alert fired
type AlertRule string

const (
	RuleThresholdCross AlertRule = "THRESHOLD_CROSS" // score first crossed the monitor threshold
	RuleScoreJump      AlertRule = "SCORE_JUMP"      // score rose sharply between observations
	RuleCriticalTier   AlertRule = "CRITICAL_TIER"   // score entered the critical tier
)

// Alert is one monitoring event worth telling a human about
type Alert struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Rule      AlertRule `json:"rule"`
	Message   string    `json:"message"`
	Score     int       `json:"score"`
	PrevScore int       `json:"prev_score"` // -1 when no prior observation
	FiredAt   time.Time `json:"fired_at"`
}

// EvaluateAlerts compares the current score against the previous observation
// and returns every rule that fired. prev is nil on the first observation.
// Pure: persistence and delivery are the caller's problem.
func EvaluateAlerts(prev *ScoreRecord, current *contracts.MAScore, cfg config.MonitorConfig) []Alert {
	var alerts []Alert
	now := time.Now()

	prevTotal := -1
	if prev != nil {
		prevTotal = prev.Total
	}

	base := Alert{
		Code:      current.Code,
		Name:      current.Name,
		Score:     current.Total,
		PrevScore: prevTotal,
		FiredAt:   now,
	}

	// First crossing of the monitoring threshold, including first sighting
	if current.Total >= cfg.MinScoreThreshold && (prev == nil || prev.Total < cfg.MinScoreThreshold) {
		a := base
		a.Rule = RuleThresholdCross
		a.Message = fmt.Sprintf("%s(%s) M&A 점수 %d점, 감시 기준 %d점 최초 돌파",
			current.Name, current.Code, current.Total, cfg.MinScoreThreshold)
		alerts = append(alerts, a)
	}

	// Sharp rise between consecutive observations
	if prev != nil && current.Total-prev.Total >= cfg.IncreaseThreshold {
		a := base
		a.Rule = RuleScoreJump
		a.Message = fmt.Sprintf("%s(%s) M&A 점수 급등: %d점 → %d점 (+%d)",
			current.Name, current.Code, prev.Total, current.Total, current.Total-prev.Total)
		alerts = append(alerts, a)
	}

	// Entry into the critical tier
	if current.Tier == contracts.MATierCritical && (prev == nil || contracts.MATier(prev.Tier) != contracts.MATierCritical) {
		a := base
		a.Rule = RuleCriticalTier
		a.Message = fmt.Sprintf("%s(%s) M&A 가능성 긴급 단계 진입 (%d점)",
			current.Name, current.Code, current.Total)
		alerts = append(alerts, a)
	}

	return alerts
}
