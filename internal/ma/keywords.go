package ma

// Keyword tables for M&A news classification. An article's severity is the
// highest tier any of its keywords hits; exclusion keywords are tracked
// separately and penalize the total score per distinct keyword.
// ⭐ SSOT: M&A 키워드 사전은 이 파일에서만 관리

// criticalKeywords are near-certain deal signals
var criticalKeywords = []string{
	"공개매수",
	"경영권 인수",
	"최대주주 변경",
	"완전자회사",
	"합병 결의",
	"주식 양수도 계약",
	"경영권 매각",
}

// highKeywords are strong precursors
var highKeywords = []string{
	"지분 인수",
	"경영권 분쟁",
	"자사주 매입 발표",
	"행동주의 펀드",
	"M&A 추진",
	"인수 협상",
	"매각 주관사 선정",
}

// mediumKeywords are weak or speculative signals
var mediumKeywords = []string{
	"지분 확대",
	"전략적 제휴",
	"매각 검토",
	"투자 유치",
	"자회사 매각",
	"인수설",
	"경영 참여",
}

// exclusionKeywords mark stories that negate a deal thesis. Each distinct
// keyword matched across all articles costs a flat penalty.
var exclusionKeywords = []string{
	"경영권 방어",
	"포이즌 필",
	"합병 철회",
	"인수 무산",
	"매각 철회",
	"공개매수 실패",
	"협상 결렬",
}
