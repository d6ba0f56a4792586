package model

import "github.com/google/uuid"

// Verdict is a coarse label for a similarity percentage.
type Verdict string

const (
	VerdictStrong  Verdict = "strong"
	VerdictPartial Verdict = "partial"
	VerdictLow     Verdict = "low"
)

// Default verdict thresholds, in percent.
const (
	DefaultStrongMatchThreshold  = 75.0
	DefaultPartialMatchThreshold = 50.0
)

// ClassifyVerdict maps a similarity percentage to a Verdict.
// Scores at or above strong are strong, at or above partial are partial.
func ClassifyVerdict(similarity, strong, partial float64) Verdict {
	switch {
	case similarity >= strong:
		return VerdictStrong
	case similarity >= partial:
		return VerdictPartial
	default:
		return VerdictLow
	}
}

// Message returns the human readable advice shown next to a verdict.
func (v Verdict) Message() string {
	switch v {
	case VerdictStrong:
		return "Strong match. The resume is well aligned with this job description."
	case VerdictPartial:
		return "Partial match. The basics are there but more detail is needed."
	default:
		return "Low match. Tailor the resume significantly for this role."
	}
}

// MatchResult is the outcome of comparing one resume against one job description.
// MissingKeywords is always the complete gap set; display truncation happens in the caller.
type MatchResult struct {
	ID              uuid.UUID `json:"id"`
	Similarity      float64   `json:"similarity"`       // percentage in [0, 100], two decimals
	MissingKeywords []string  `json:"missing_keywords"` // JD tokens absent from the resume, stopwords removed
	MissingCount    int       `json:"missing_count"`
	Verdict         Verdict   `json:"verdict"`
	ResumeTokens    int       `json:"resume_tokens"` // unique normalized resume tokens
	JobTokens       int       `json:"job_tokens"`    // unique normalized job description tokens
	Took            int64     `json:"took"`          // milliseconds
}

// TopMissing returns at most limit missing keywords. A limit below 1 returns all of them.
func (r MatchResult) TopMissing(limit int) []string {
	if limit < 1 || limit >= len(r.MissingKeywords) {
		return r.MissingKeywords
	}
	return r.MissingKeywords[:limit]
}
