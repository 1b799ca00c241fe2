package contracts

import "time"

// NewsSeverity classifies a news item by its strongest matched keyword
type NewsSeverity string

const (
	SeverityCritical NewsSeverity = "CRITICAL" // 직접적인 M&A 시그널
	SeverityHigh     NewsSeverity = "HIGH"     // 간접적인 시그널
	SeverityMedium   NewsSeverity = "MEDIUM"   // 참고 시그널
	SeverityNone     NewsSeverity = "NONE"
)

// NewsItem is one classified news headline
type NewsItem struct {
	Title           string       `json:"title"`
	URL             string       `json:"url"`
	Source          string       `json:"source"`
	PublishedAt     time.Time    `json:"published_at,omitempty"`
	MatchedKeywords []string     `json:"matched_keywords"`
	Severity        NewsSeverity `json:"severity"`
}

// MATier is the 5-level M&A likelihood bucket
type MATier string

const (
	MATierCritical MATier = "CRITICAL" // 🔴 긴급
	MATierHigh     MATier = "HIGH"     // 🟠 높음
	MATierMedium   MATier = "MEDIUM"   // 🟡 중간
	MATierLow      MATier = "LOW"      // 🟢 낮음
	MATierNone     MATier = "NONE"     // ⚪ 없음
)

// MATierFor maps an M&A total score to its tier
func MATierFor(total int) MATier {
	switch {
	case total >= 70:
		return MATierCritical
	case total >= 50:
		return MATierHigh
	case total >= 30:
		return MATierMedium
	case total >= 15:
		return MATierLow
	default:
		return MATierNone
	}
}

// MAScore is the M&A precursor score for one instrument.
// total = max(0, news+volume+valuation+technical - exclusion penalty).
type MAScore struct {
	Code string `json:"code"`
	Name string `json:"name"`

	News      int `json:"news_score"`      // 0-40
	Volume    int `json:"volume_score"`    // 0-30
	Valuation int `json:"valuation_score"` // 0-20
	Technical int `json:"technical_score"` // 0-10

	ExclusionPenalty int `json:"exclusion_penalty"`
	Total            int `json:"total_score"` // 0-100

	Tier MATier `json:"tier"`

	NewsItems       []NewsItem `json:"news_items,omitempty"`
	MatchedKeywords []string   `json:"matched_keywords"`
	ExclusionFlags  []string   `json:"exclusion_flags"`
	ReasonTags      []string   `json:"reason_tags"`

	ScoredAt time.Time `json:"scored_at"`
}
