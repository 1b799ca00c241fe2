package ma

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

func newTestScorer() *Scorer {
	return NewScorer(nil, logger.NewNop())
}

func newsItem(title string) contracts.NewsItem {
	return contracts.NewsItem{Title: title}
}

func TestClassifyNewsSeverity(t *testing.T) {
	items := ClassifyNews([]contracts.NewsItem{
		newsItem("A사, B사 공개매수 돌입"),
		newsItem("C사 지분 인수 협상 중"),
		newsItem("D사 인수설 확산"),
		newsItem("E사 신제품 출시"),
	})

	assert.Equal(t, contracts.SeverityCritical, items[0].Severity)
	assert.Equal(t, contracts.SeverityHigh, items[1].Severity)
	assert.Equal(t, contracts.SeverityMedium, items[2].Severity)
	assert.Equal(t, contracts.SeverityNone, items[3].Severity)
}

func TestClassifyNewsCriticalDominates(t *testing.T) {
	items := ClassifyNews([]contracts.NewsItem{
		newsItem("공개매수와 지분 인수 동시 추진"),
	})
	assert.Equal(t, contracts.SeverityCritical, items[0].Severity)
	assert.Contains(t, items[0].MatchedKeywords, "공개매수")
}

func TestClassifyNewsExclusionDoesNotRaiseSeverity(t *testing.T) {
	items := ClassifyNews([]contracts.NewsItem{
		newsItem("이사회, 경영권 방어 나서"),
	})
	assert.Equal(t, contracts.SeverityNone, items[0].Severity)
	assert.Contains(t, items[0].MatchedKeywords, "경영권 방어")
}

func TestNewsScoreCaps(t *testing.T) {
	var items []contracts.NewsItem
	for i := 0; i < 4; i++ {
		items = append(items, newsItem(fmt.Sprintf("%d보: 공개매수 발표", i)))
	}
	for i := 0; i < 5; i++ {
		items = append(items, newsItem(fmt.Sprintf("%d보: 지분 인수 검토", i)))
	}
	for i := 0; i < 8; i++ {
		items = append(items, newsItem(fmt.Sprintf("%d보: 인수설 보도", i)))
	}

	score := newTestScorer().Score(&contracts.Snapshot{Code: "000100"}, ClassifyNews(items))

	// critical 4*10 capped at 25, high 5*3 capped at 10, medium 8*1 capped at 5
	assert.Equal(t, 40, score.News)
}

func TestVolumeScoreAdditive(t *testing.T) {
	s := &contracts.Snapshot{
		Code:          "000100",
		VolumeRatio:   5.5,
		TurnoverPct:   11.0,
		Turnover5DPct: 35.0,
	}
	score := newTestScorer().Score(s, nil)
	assert.Equal(t, 30, score.Volume, "all three volume components stack")
}

func TestVolumeScoreMidTiers(t *testing.T) {
	s := &contracts.Snapshot{
		Code:          "000100",
		VolumeRatio:   2.5,
		TurnoverPct:   4.0,
		Turnover5DPct: 20.0,
	}
	score := newTestScorer().Score(s, nil)
	assert.Equal(t, 5+3+3, score.Volume)
}

func TestValuationScore(t *testing.T) {
	s := &contracts.Snapshot{
		Code:               "000100",
		PBR:                0.4,
		MarketCap:          1000e8,
		FairValueUpsidePct: 60,
	}
	score := newTestScorer().Score(s, nil)
	assert.Equal(t, 20, score.Valuation)

	// Missing PBR contributes nothing
	noPBR := newTestScorer().Score(&contracts.Snapshot{Code: "000100", MarketCap: 1000e8}, nil)
	assert.Equal(t, 6, noPBR.Valuation)
}

func TestTechnicalScoreIconMap(t *testing.T) {
	tests := []struct {
		signal string
		want   int
	}{
		{"↑◎", 10},
		{"↗〇", 7},
		{"→△", 3},
		{"↘▲", 1},
		{"↓✖", 0},
		{"", 0},
		{"??", 0},
	}
	for _, tt := range tests {
		score := newTestScorer().Score(&contracts.Snapshot{Code: "000100", TechnicalSignal: tt.signal}, nil)
		assert.Equal(t, tt.want, score.Technical, "signal %q", tt.signal)
	}
}

func TestExclusionPenaltyFloorsAtZero(t *testing.T) {
	// One medium article (+1) plus weak volume (+5+3+3=11) gives a raw 12,
	// but a single exclusion keyword (-15) floors the total at zero.
	items := ClassifyNews([]contracts.NewsItem{
		newsItem("경영 참여 선언"),
		newsItem("포이즌 필 도입 추진"),
	})
	s := &contracts.Snapshot{
		Code:          "000100",
		VolumeRatio:   2.0,
		TurnoverPct:   3.0,
		Turnover5DPct: 15.0,
	}

	score := newTestScorer().Score(s, items)
	require.Equal(t, 15, score.ExclusionPenalty)
	assert.Equal(t, 12, score.News+score.Volume+score.Valuation+score.Technical)
	assert.Equal(t, 0, score.Total)
	assert.Equal(t, contracts.MATierNone, score.Tier)
	assert.Equal(t, []string{"포이즌 필"}, score.ExclusionFlags)
}

func TestExclusionPenaltyDistinctKeywords(t *testing.T) {
	items := ClassifyNews([]contracts.NewsItem{
		newsItem("경영권 방어 총력"),
		newsItem("경영권 방어 수단 검토"),
		newsItem("인수 무산 가능성"),
	})
	score := newTestScorer().Score(&contracts.Snapshot{Code: "000100"}, items)
	assert.Equal(t, 30, score.ExclusionPenalty, "duplicate keyword counts once")
	assert.Len(t, score.ExclusionFlags, 2)
}

func TestScoreTiers(t *testing.T) {
	tests := []struct {
		total int
		want  contracts.MATier
	}{
		{70, contracts.MATierCritical},
		{69, contracts.MATierHigh},
		{50, contracts.MATierHigh},
		{49, contracts.MATierMedium},
		{30, contracts.MATierMedium},
		{29, contracts.MATierLow},
		{15, contracts.MATierLow},
		{14, contracts.MATierNone},
		{0, contracts.MATierNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, contracts.MATierFor(tt.total), "total %d", tt.total)
	}
}

type fakeNews struct {
	items []contracts.NewsItem
	err   error
	query string
}

func (f *fakeNews) Search(_ context.Context, query string) ([]contracts.NewsItem, error) {
	f.query = query
	return f.items, f.err
}

func TestAnalyzeDegradesWhenNewsFails(t *testing.T) {
	news := &fakeNews{err: fmt.Errorf("blocked")}
	scorer := NewScorer(news, logger.NewNop())

	s := &contracts.Snapshot{Code: "000100", Name: "테스트", VolumeRatio: 5.0}
	score, err := scorer.Analyze(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 0, score.News)
	assert.Equal(t, 15, score.Volume)
	assert.Contains(t, news.query, "테스트")
}

func TestAnalyzeClassifiesFetchedNews(t *testing.T) {
	news := &fakeNews{items: []contracts.NewsItem{newsItem("테스트 공개매수 발표")}}
	scorer := NewScorer(news, logger.NewNop())

	score, err := scorer.Analyze(context.Background(), &contracts.Snapshot{Code: "000100", Name: "테스트"})
	require.NoError(t, err)
	assert.Equal(t, 10, score.News)
	assert.Contains(t, score.MatchedKeywords, "공개매수")
}
