package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-ats-scanner/config"
	"github.com/gcbaptista/go-ats-scanner/internal/analytics"
	ierrors "github.com/gcbaptista/go-ats-scanner/internal/errors"
	"github.com/gcbaptista/go-ats-scanner/internal/extract"
	"github.com/gcbaptista/go-ats-scanner/internal/logger"
	"github.com/gcbaptista/go-ats-scanner/internal/scoring"
	"github.com/gcbaptista/go-ats-scanner/internal/tokenizer"
	"github.com/gcbaptista/go-ats-scanner/model"
	"github.com/gcbaptista/go-ats-scanner/services"
)

const logPreviewLength = 80

// Engine runs analyses and records analytics about them.
// It implements the services.AnalysisEngine interface.
type Engine struct {
	settings  config.MatcherSettings
	scorer    *scoring.Scorer
	extractor services.Extractor
	analytics *analytics.Service
	logger    *zap.Logger
}

// NewEngine creates an analysis engine from matcher settings.
// A nil logger disables logging.
func NewEngine(settings config.MatcherSettings, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		settings: settings,
		scorer: scoring.NewScorer(scoring.Options{
			Stopwords:             StopwordsFromSettings(settings),
			MinTermLength:         settings.MinTermLength,
			FoldDiacritics:        settings.FoldDiacritics,
			StrongMatchThreshold:  settings.StrongMatchThreshold,
			PartialMatchThreshold: settings.PartialMatchThreshold,
		}),
		extractor: extract.NewExtractor(),
		analytics: analytics.NewService(),
		logger:    log,
	}
}

// StopwordsFromSettings builds the stopword set described by settings:
// the built-in list unless Stopwords replaces it, plus ExtraStopwords.
func StopwordsFromSettings(settings config.MatcherSettings) scoring.StopwordSet {
	base := scoring.DefaultStopwords()
	if len(settings.Stopwords) > 0 {
		base = scoring.NewStopwordSet(settings.Stopwords...)
	}
	if len(settings.ExtraStopwords) > 0 {
		base = base.With(settings.ExtraStopwords...)
	}
	return base
}

// Settings returns the matcher settings the engine was built with.
func (e *Engine) Settings() config.MatcherSettings {
	return e.settings
}

// AnalyzeText compares resumeText with jobDescription.
// Degenerate input is returned as an error matching errors.ErrDegenerateInput.
func (e *Engine) AnalyzeText(ctx context.Context, resumeText, jobDescription, sourceType string) (model.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return model.MatchResult{}, err
	}

	start := time.Now()
	id := uuid.New()

	result, err := e.scorer.Analyze(resumeText, jobDescription)
	took := time.Since(start)
	if err != nil {
		if errors.Is(err, ierrors.ErrDegenerateInput) {
			e.analytics.TrackAnalysis(model.AnalysisEvent{
				AnalysisID:   id.String(),
				Degenerate:   true,
				SourceType:   sourceType,
				ResponseTime: took,
			})
			e.logger.Warn("analysis has no comparable terms",
				zap.String("analysis_id", id.String()),
				zap.String("source", sourceType),
				zap.Int("resume_length", len(resumeText)),
				zap.Int("job_description_length", len(jobDescription)))
		}
		return model.MatchResult{}, err
	}

	result.ID = id
	result.Took = took.Milliseconds()

	e.analytics.TrackAnalysis(model.AnalysisEvent{
		AnalysisID:      id.String(),
		Similarity:      result.Similarity,
		Verdict:         result.Verdict,
		MissingKeywords: result.MissingKeywords,
		SourceType:      sourceType,
		ResponseTime:    took,
	})

	e.logger.Info("analysis completed",
		zap.String("analysis_id", id.String()),
		zap.String("source", sourceType),
		zap.Float64("similarity", result.Similarity),
		zap.String("verdict", string(result.Verdict)),
		zap.Int("missing_count", result.MissingCount),
		zap.Duration("took", took))
	e.logger.Debug("analysis input",
		zap.String("analysis_id", id.String()),
		zap.String("job_description", logger.TruncateForLog(jobDescription, logPreviewLength)))

	return result, nil
}

// AnalyzeDocument extracts the resume text from a file and analyzes it.
func (e *Engine) AnalyzeDocument(ctx context.Context, resume services.DocumentFile, jobDescription, sourceType string) (model.MatchResult, error) {
	text, err := e.ExtractText(resume)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("failed to extract resume %q: %w", resume.Filename, err)
	}
	return e.AnalyzeText(ctx, text, jobDescription, sourceType)
}

// ExtractText returns the raw text of file, detecting its MIME type when missing.
func (e *Engine) ExtractText(file services.DocumentFile) (string, error) {
	mimeType := file.MIMEType
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = extract.DetectMIME(file.Filename, file.Data)
	}

	text, err := e.extractor.Extract(mimeType, file.Data)
	if err != nil {
		var unsupported *ierrors.UnsupportedDocumentError
		if errors.As(err, &unsupported) && unsupported.Filename == "" {
			unsupported.Filename = file.Filename
		}
		return "", err
	}

	e.logger.Debug("document extracted",
		zap.String("filename", file.Filename),
		zap.String("mime_type", mimeType),
		zap.Int("bytes", len(file.Data)),
		zap.Int("characters", len(text)))
	return text, nil
}

// Normalize returns the gap-analysis tokens of text.
func (e *Engine) Normalize(text string) []string {
	if e.settings.FoldDiacritics {
		text = tokenizer.FoldDiacritics(text)
	}
	return tokenizer.Normalize(text)
}

// Dashboard returns aggregated analytics for every analysis run by this engine.
func (e *Engine) Dashboard() model.AnalyticsDashboard {
	return e.analytics.GetDashboardData()
}
