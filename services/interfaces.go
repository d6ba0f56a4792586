package services

import (
	"context"

	"github.com/gcbaptista/go-ats-scanner/config"
	"github.com/gcbaptista/go-ats-scanner/model"
)

// Source types recorded with every analysis
const (
	SourceText   = "text"   // both documents supplied as text
	SourceUpload = "upload" // resume uploaded as a file
	SourceCLI    = "cli"    // command line invocation
)

// AnalysisRequest is the JSON body of a text analysis
type AnalysisRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// DocumentFile is a resume or job description supplied as raw bytes.
// MIMEType may be empty, in which case it is detected from Filename and Data.
type DocumentFile struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Extractor converts document bytes into raw text
type Extractor interface {
	Extract(mimeType string, data []byte) (string, error)
}

// Fetcher loads document bytes from a location (path, file:// or s3:// URI)
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (data []byte, filename string, err error)
}

// Analyzer compares resumes with job descriptions
type Analyzer interface {
	AnalyzeText(ctx context.Context, resumeText, jobDescription, sourceType string) (model.MatchResult, error)
	AnalyzeDocument(ctx context.Context, resume DocumentFile, jobDescription, sourceType string) (model.MatchResult, error)
	ExtractText(file DocumentFile) (string, error)
	Normalize(text string) []string
}

// AnalyticsProvider exposes aggregated analysis statistics
type AnalyticsProvider interface {
	Dashboard() model.AnalyticsDashboard
}

// AnalysisEngine is everything the API and CLI need from the engine
type AnalysisEngine interface {
	Analyzer
	AnalyticsProvider
	Settings() config.MatcherSettings
}
