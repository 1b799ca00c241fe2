package monitor

import (
	"fmt"
	"strings"
)

// FormatAlertEmail renders one cycle's alerts into a plain-text digest
func FormatAlertEmail(alerts []Alert) (subject, body string) {
	subject = fmt.Sprintf("🦅 M&A 감시 알림 %d건", len(alerts))

	var b strings.Builder
	b.WriteString("M&A 사전 감시에서 다음 변화가 감지되었습니다.\n\n")
	for i, alert := range alerts {
		b.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, ruleLabel(alert.Rule), alert.Message))
		if alert.PrevScore >= 0 {
			b.WriteString(fmt.Sprintf("   이전 점수: %d점 → 현재 점수: %d점\n", alert.PrevScore, alert.Score))
		} else {
			b.WriteString(fmt.Sprintf("   현재 점수: %d점 (최초 관측)\n", alert.Score))
		}
		b.WriteString("\n")
	}
	b.WriteString("본 메일은 자동 발송되었습니다.\n")

	return subject, b.String()
}

func ruleLabel(rule AlertRule) string {
	switch rule {
	case RuleThresholdCross:
		return "기준 돌파"
	case RuleScoreJump:
		return "점수 급등"
	case RuleCriticalTier:
		return "긴급 단계"
	default:
		return string(rule)
	}
}
