// Package scoring compares a resume with a job description.
//
// Similarity is the cosine of raw term-frequency vectors built over the
// shared vocabulary of both texts, expressed as a percentage. The keyword gap
// is the set of normalized job description tokens that the resume lacks,
// minus stopwords.
package scoring

import (
	ierrors "github.com/gcbaptista/go-ats-scanner/internal/errors"
	"github.com/gcbaptista/go-ats-scanner/internal/tokenizer"
	"github.com/gcbaptista/go-ats-scanner/model"
)

// Options configures a Scorer. A MinTermLength below 1 and nil thresholds
// fall back to defaults; an explicit 0 threshold is kept.
type Options struct {
	Stopwords             StopwordSet
	MinTermLength         int
	FoldDiacritics        bool
	StrongMatchThreshold  *float64
	PartialMatchThreshold *float64
}

// Scorer holds the immutable configuration for similarity and gap analysis.
// A Scorer has no mutable state and is safe for concurrent use.
type Scorer struct {
	stopwords      StopwordSet
	minTermLength  int
	foldDiacritics bool
	strong         float64
	partial        float64
}

// NewScorer creates a Scorer from opts.
func NewScorer(opts Options) *Scorer {
	s := &Scorer{
		stopwords:      opts.Stopwords,
		minTermLength:  opts.MinTermLength,
		foldDiacritics: opts.FoldDiacritics,
		strong:         model.DefaultStrongMatchThreshold,
		partial:        model.DefaultPartialMatchThreshold,
	}
	if s.minTermLength < 1 {
		s.minTermLength = tokenizer.DefaultMinTermLength
	}
	if opts.StrongMatchThreshold != nil {
		s.strong = *opts.StrongMatchThreshold
	}
	if opts.PartialMatchThreshold != nil {
		s.partial = *opts.PartialMatchThreshold
	}
	return s
}

// NewDefaultScorer returns a Scorer with the built-in stopwords and defaults.
func NewDefaultScorer() *Scorer {
	return NewScorer(Options{Stopwords: DefaultStopwords()})
}

func (s *Scorer) prepare(text string) string {
	if s.foldDiacritics {
		return tokenizer.FoldDiacritics(text)
	}
	return text
}

// Similarity returns the cosine similarity of textA and textB as a percentage
// in [0, 100] rounded to two decimals. It is symmetric in its arguments.
//
// If neither text contains a term of at least MinTermLength runes the result is
// a *errors.DegenerateInputError. If only one text is empty of terms the
// similarity is 0.
func (s *Scorer) Similarity(textA, textB string) (float64, error) {
	termsA := tokenizer.Terms(s.prepare(textA), s.minTermLength)
	termsB := tokenizer.Terms(s.prepare(textB), s.minTermLength)

	vocab := BuildVocabulary(termsA, termsB)
	if vocab.Size() == 0 {
		return 0, ierrors.NewDegenerateInputError(s.minTermLength)
	}

	return roundPercent(CosineSimilarity(vocab.Vectorize(termsA), vocab.Vectorize(termsB))), nil
}

// Gap returns the normalized tokens of jdText that appear neither in
// resumeText nor in the stopword set, in order of first appearance in jdText.
// The result is never nil.
func (s *Scorer) Gap(jdText, resumeText string) []string {
	gap, _, _ := s.gap(jdText, resumeText)
	return gap
}

func (s *Scorer) gap(jdText, resumeText string) (gap []string, jdUnique, resumeUnique int) {
	_, jdOrder := tokenizer.TokenSet(tokenizer.Normalize(s.prepare(jdText)))
	resumeSet, _ := tokenizer.TokenSet(tokenizer.Normalize(s.prepare(resumeText)))

	gap = make([]string, 0)
	for _, token := range jdOrder {
		if _, inResume := resumeSet[token]; inResume {
			continue
		}
		if s.stopwords.Contains(token) {
			continue
		}
		gap = append(gap, token)
	}
	return gap, len(jdOrder), len(resumeSet)
}

// Analyze computes similarity and gap for one resume against one job description.
// ID and Took are left for the caller to fill in.
func (s *Scorer) Analyze(resumeText, jdText string) (model.MatchResult, error) {
	similarity, err := s.Similarity(resumeText, jdText)
	if err != nil {
		return model.MatchResult{}, err
	}

	gap, jdUnique, resumeUnique := s.gap(jdText, resumeText)
	return model.MatchResult{
		Similarity:      similarity,
		MissingKeywords: gap,
		MissingCount:    len(gap),
		Verdict:         model.ClassifyVerdict(similarity, s.strong, s.partial),
		ResumeTokens:    resumeUnique,
		JobTokens:       jdUnique,
	}, nil
}

var defaultScorer = NewDefaultScorer()

// ComputeSimilarity returns the similarity percentage between a resume and a job description
// using the default stopwords and term length.
func ComputeSimilarity(resumeText, jdText string) (float64, error) {
	return defaultScorer.Similarity(resumeText, jdText)
}

// ComputeMissingKeywords returns the job description keywords missing from the resume
// using the default stopwords.
func ComputeMissingKeywords(resumeText, jdText string) []string {
	return defaultScorer.Gap(jdText, resumeText)
}
