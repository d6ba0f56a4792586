package model

import "strings"

// DocumentKind identifies which side of an analysis a document belongs to.
type DocumentKind string

const (
	DocumentKindResume         DocumentKind = "resume"
	DocumentKindJobDescription DocumentKind = "job_description"
)

// Document is raw text plus where it came from.
// Source is informational only (a filename, an s3:// URI, "inline").
type Document struct {
	Kind   DocumentKind `json:"kind"`
	Text   string       `json:"text"`
	Source string       `json:"source,omitempty"`
}

// IsBlank reports whether the document has no text besides whitespace.
func (d Document) IsBlank() bool {
	return strings.TrimSpace(d.Text) == ""
}
