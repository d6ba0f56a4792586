package analytics

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-ats-scanner/model"
)

const (
	maxEventsToKeep    = 10000 // Keep last 10k events for performance
	topKeywordsToShow  = 10
	unknownSourceLabel = "unknown"
)

// Service keeps in-memory analytics about analyses. Nothing is persisted.
type Service struct {
	mutex  sync.RWMutex
	events []model.AnalysisEvent
	now    func() time.Time
}

// NewService creates a new analytics service
func NewService() *Service {
	return &Service{
		events: make([]model.AnalysisEvent, 0),
		now:    time.Now,
	}
}

// TrackAnalysis records a new analysis event
func (s *Service) TrackAnalysis(event model.AnalysisEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	scored := s.scoredEvents(s.events)

	return model.AnalyticsDashboard{
		TotalAnalyses:      len(s.events),
		DegenerateAnalyses: len(s.events) - len(scored),
		AverageSimilarity:  s.calculateAverageSimilarity(scored),
		AvgResponseTime:    s.calculateAvgResponseTime(s.events),
		Verdicts:           s.getVerdictStats(scored),
		SourceTypes:        s.getSourceTypes(s.events),
		TopMissingKeywords: s.getTopMissingKeywords(scored, topKeywordsToShow),
	}
}

// scoredEvents returns the events that produced a similarity score
func (s *Service) scoredEvents(events []model.AnalysisEvent) []model.AnalysisEvent {
	scored := make([]model.AnalysisEvent, 0, len(events))
	for _, event := range events {
		if !event.Degenerate {
			scored = append(scored, event)
		}
	}
	return scored
}

// calculateAverageSimilarity averages similarity percentages, rounded to two decimals
func (s *Service) calculateAverageSimilarity(events []model.AnalysisEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	var total float64
	for _, event := range events {
		total += event.Similarity
	}
	return math.Round(total/float64(len(events))*100) / 100
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func (s *Service) calculateAvgResponseTime(events []model.AnalysisEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avgDuration := total / time.Duration(len(events))
	return avgDuration.Milliseconds()
}

// getVerdictStats counts events per verdict
func (s *Service) getVerdictStats(events []model.AnalysisEvent) model.VerdictStats {
	stats := model.VerdictStats{}

	for _, event := range events {
		switch event.Verdict {
		case model.VerdictStrong:
			stats.Strong++
		case model.VerdictPartial:
			stats.Partial++
		case model.VerdictLow:
			stats.Low++
		}
	}

	return stats
}

// getSourceTypes counts events per source type
func (s *Service) getSourceTypes(events []model.AnalysisEvent) map[string]int {
	counts := make(map[string]int)
	for _, event := range events {
		source := event.SourceType
		if source == "" {
			source = unknownSourceLabel
		}
		counts[source]++
	}
	return counts
}

// getTopMissingKeywords returns the keywords most often reported missing.
// Ties are broken alphabetically.
func (s *Service) getTopMissingKeywords(events []model.AnalysisEvent, limit int) []model.KeywordFrequency {
	counts := make(map[string]int)
	for _, event := range events {
		for _, keyword := range event.MissingKeywords {
			counts[keyword]++
		}
	}

	keywords := make([]model.KeywordFrequency, 0, len(counts))
	for keyword, count := range counts {
		keywords = append(keywords, model.KeywordFrequency{Keyword: keyword, Count: count})
	}

	// Sort by count descending
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Keyword < keywords[j].Keyword
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}
