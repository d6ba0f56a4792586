package model

import "time"

// AnalysisEvent represents a single analysis for analytics tracking
type AnalysisEvent struct {
	AnalysisID      string        `json:"analysis_id"`
	Similarity      float64       `json:"similarity"`
	Verdict         Verdict       `json:"verdict"`
	MissingKeywords []string      `json:"missing_keywords"`
	Degenerate      bool          `json:"degenerate"`  // similarity could not be computed
	SourceType      string        `json:"source_type"` // "text", "upload", "cli"
	ResponseTime    time.Duration `json:"response_time"`
	Timestamp       time.Time     `json:"timestamp"`
}

// KeywordFrequency represents how often a keyword was reported missing
type KeywordFrequency struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// VerdictStats represents the number of analyses per verdict
type VerdictStats struct {
	Strong  int `json:"strong"`
	Partial int `json:"partial"`
	Low     int `json:"low"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	TotalAnalyses      int                `json:"total_analyses"`
	DegenerateAnalyses int                `json:"degenerate_analyses"`
	AverageSimilarity  float64            `json:"average_similarity"`
	AvgResponseTime    int64              `json:"avg_response_time"` // in milliseconds
	Verdicts           VerdictStats       `json:"verdicts"`
	SourceTypes        map[string]int     `json:"source_types"`
	TopMissingKeywords []KeywordFrequency `json:"top_missing_keywords"`
}
