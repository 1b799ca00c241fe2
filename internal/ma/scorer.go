package ma

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

// Per-article news points and their per-category ceilings
const (
	criticalPoints = 10
	highPoints     = 3
	mediumPoints   = 1

	criticalNewsCap = 25
	highNewsCap     = 10
	mediumNewsCap   = 5

	exclusionPenaltyPer = 15 // per distinct exclusion keyword
)

// Scorer computes M&A likelihood scores from news and market state.
// ⭐ SSOT: M&A 점수 계산은 이 구조체에서만
type Scorer struct {
	news   contracts.NewsProvider
	logger *logger.Logger
}

// NewScorer creates a new M&A scorer
func NewScorer(news contracts.NewsProvider, log *logger.Logger) *Scorer {
	return &Scorer{
		news:   news,
		logger: log.WithField("module", "ma_scorer"),
	}
}

// Analyze searches recent news for the instrument and scores it.
// A news search failure degrades to a zero news score rather than failing
// the analysis; price-based components still apply.
func (sc *Scorer) Analyze(ctx context.Context, snapshot *contracts.Snapshot) (*contracts.MAScore, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("nil snapshot")
	}

	query := fmt.Sprintf("%s 인수 합병", snapshot.Name)
	items, err := sc.news.Search(ctx, query)
	if err != nil {
		sc.logger.WithError(err).WithField("code", snapshot.Code).Warn("News search failed, scoring without news")
		items = nil
	}

	classified := ClassifyNews(items)
	return sc.Score(snapshot, classified), nil
}

// ClassifyNews assigns each item its severity and matched keywords.
// Severity is the strongest category any keyword hits; exclusion keywords
// are recorded as matches but do not raise severity.
func ClassifyNews(items []contracts.NewsItem) []contracts.NewsItem {
	classified := make([]contracts.NewsItem, len(items))
	for i, item := range items {
		item.Severity = contracts.SeverityNone
		item.MatchedKeywords = nil

		for _, kw := range criticalKeywords {
			if strings.Contains(item.Title, kw) {
				item.MatchedKeywords = append(item.MatchedKeywords, kw)
				item.Severity = contracts.SeverityCritical
			}
		}
		if item.Severity == contracts.SeverityNone {
			for _, kw := range highKeywords {
				if strings.Contains(item.Title, kw) {
					item.MatchedKeywords = append(item.MatchedKeywords, kw)
					item.Severity = contracts.SeverityHigh
				}
			}
		}
		if item.Severity == contracts.SeverityNone {
			for _, kw := range mediumKeywords {
				if strings.Contains(item.Title, kw) {
					item.MatchedKeywords = append(item.MatchedKeywords, kw)
					item.Severity = contracts.SeverityMedium
				}
			}
		}

		for _, kw := range exclusionKeywords {
			if strings.Contains(item.Title, kw) {
				item.MatchedKeywords = append(item.MatchedKeywords, kw)
			}
		}

		classified[i] = item
	}
	return classified
}

// Score computes the M&A score from a snapshot and already classified news.
// Pure: same inputs always yield the same score.
func (sc *Scorer) Score(snapshot *contracts.Snapshot, items []contracts.NewsItem) *contracts.MAScore {
	score := &contracts.MAScore{
		Code:      snapshot.Code,
		Name:      snapshot.Name,
		NewsItems: items,
		ScoredAt:  time.Now(),
	}

	score.News = sc.scoreNews(items, score)
	score.Volume = sc.scoreVolume(snapshot, score)
	score.Valuation = sc.scoreValuation(snapshot, score)
	score.Technical = sc.scoreTechnical(snapshot, score)
	score.ExclusionPenalty = sc.exclusionPenalty(items, score)

	total := score.News + score.Volume + score.Valuation + score.Technical - score.ExclusionPenalty
	if total < 0 {
		total = 0
	}
	score.Total = total
	score.Tier = contracts.MATierFor(total)

	return score
}

// scoreNews: critical articles 10pt each (max 25), high 3pt (max 10),
// medium 1pt (max 5).
func (sc *Scorer) scoreNews(items []contracts.NewsItem, score *contracts.MAScore) int {
	var critical, high, medium int
	seen := make(map[string]bool)

	for _, item := range items {
		switch item.Severity {
		case contracts.SeverityCritical:
			critical++
		case contracts.SeverityHigh:
			high++
		case contracts.SeverityMedium:
			medium++
		}
		for _, kw := range item.MatchedKeywords {
			if !seen[kw] && !isExclusion(kw) {
				seen[kw] = true
				score.MatchedKeywords = append(score.MatchedKeywords, kw)
			}
		}
	}
	sort.Strings(score.MatchedKeywords)

	points := capped(critical*criticalPoints, criticalNewsCap) +
		capped(high*highPoints, highNewsCap) +
		capped(medium*mediumPoints, mediumNewsCap)

	if critical > 0 {
		score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("핵심 M&A 뉴스 %d건", critical))
	}
	if high > 0 {
		score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("유력 시그널 뉴스 %d건", high))
	}
	return points
}

// scoreVolume is purely additive: every fired tier counts, no best-two.
func (sc *Scorer) scoreVolume(s *contracts.Snapshot, score *contracts.MAScore) int {
	points := 0

	switch {
	case s.VolumeRatio >= 5.0:
		points += 15
		score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("거래량 %.1f배 폭증", s.VolumeRatio))
	case s.VolumeRatio >= 3.0:
		points += 10
		score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("거래량 %.1f배 급증", s.VolumeRatio))
	case s.VolumeRatio >= 2.0:
		points += 5
	}

	switch {
	case s.TurnoverPct >= 10.0:
		points += 10
		score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("회전율 %.1f%%", s.TurnoverPct))
	case s.TurnoverPct >= 5.0:
		points += 7
	case s.TurnoverPct >= 3.0:
		points += 3
	}

	switch {
	case s.Turnover5DPct >= 30.0:
		points += 5
		score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("5일 누적 회전율 %.0f%%", s.Turnover5DPct))
	case s.Turnover5DPct >= 15.0:
		points += 3
	}

	return points
}

func (sc *Scorer) scoreValuation(s *contracts.Snapshot, score *contracts.MAScore) int {
	points := 0

	if s.PBR > 0 {
		switch {
		case s.PBR < 0.5:
			points += 8
			score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("PBR %.2f 초저평가", s.PBR))
		case s.PBR < 0.8:
			points += 6
			score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("PBR %.2f 저평가", s.PBR))
		case s.PBR < 1.0:
			points += 4
		}
	}

	oku := s.MarketCap / 1e8
	switch {
	case oku >= 300 && oku <= 2000:
		points += 6
		score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("인수 적합 시총 %.0f억", oku))
	case oku > 2000 && oku <= 5000:
		points += 3
	}

	switch {
	case s.FairValueUpsidePct >= 50:
		points += 6
		score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("적정가 대비 상승여력 %.0f%%", s.FairValueUpsidePct))
	case s.FairValueUpsidePct >= 30:
		points += 4
	case s.FairValueUpsidePct >= 15:
		points += 2
	}

	return points
}

// technicalSignalPoints maps chart trend icons to points. Unknown icons
// score zero.
var technicalSignalPoints = map[string]int{
	"↑◎": 10,
	"↗〇": 7,
	"→△": 3,
	"↘▲": 1,
	"↓✖": 0,
}

func (sc *Scorer) scoreTechnical(s *contracts.Snapshot, score *contracts.MAScore) int {
	points := technicalSignalPoints[s.TechnicalSignal]
	if points >= 7 {
		score.ReasonTags = append(score.ReasonTags, fmt.Sprintf("차트 추세 %s", s.TechnicalSignal))
	}
	return points
}

// exclusionPenalty charges per distinct exclusion keyword seen anywhere in
// the article set.
func (sc *Scorer) exclusionPenalty(items []contracts.NewsItem, score *contracts.MAScore) int {
	seen := make(map[string]bool)
	for _, item := range items {
		for _, kw := range item.MatchedKeywords {
			if isExclusion(kw) && !seen[kw] {
				seen[kw] = true
				score.ExclusionFlags = append(score.ExclusionFlags, kw)
			}
		}
	}
	sort.Strings(score.ExclusionFlags)
	return len(seen) * exclusionPenaltyPer
}

func isExclusion(keyword string) bool {
	for _, kw := range exclusionKeywords {
		if kw == keyword {
			return true
		}
	}
	return false
}

func capped(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}
