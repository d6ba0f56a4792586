package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "github.com/gcbaptista/go-ats-scanner/internal/errors"
	"github.com/gcbaptista/go-ats-scanner/internal/tokenizer"
	"github.com/gcbaptista/go-ats-scanner/model"
)

var sampleTexts = []string{
	"Python developer with SQL experience",
	"Looking for a Python developer with AWS and SQL skills",
	"Java Go Rust",
	"Senior Go engineer. Kubernetes, Docker, gRPC; 5+ years of distributed systems.",
	"identical text here",
	"Résumé: data_engineer, Spark & Airflow (ETL) pipelines",
	"go go go go rust",
	"",
	"a b c",
}

func TestScorer_PartialOverlapScenario(t *testing.T) {
	resume := "Python developer with SQL experience"
	jd := "Looking for a Python developer with AWS and SQL skills"

	similarity, err := ComputeSimilarity(resume, jd)
	require.NoError(t, err)
	assert.Greater(t, similarity, 0.0)
	assert.Less(t, similarity, 100.0)
	// 4 shared terms, |resume| = sqrt(5), |jd| = sqrt(9)
	assert.Equal(t, 59.63, similarity)

	missing := ComputeMissingKeywords(resume, jd)
	assert.Equal(t, []string{"looking", "aws", "skills"}, missing)
	for _, excluded := range []string{"python", "developer", "with", "sql", "experience", "and", "for", "a"} {
		assert.NotContains(t, missing, excluded)
	}
}

func TestScorer_EmptyResumeScenario(t *testing.T) {
	similarity, err := ComputeSimilarity("", "Java Go Rust")
	require.NoError(t, err)
	assert.Equal(t, 0.0, similarity)

	missing := ComputeMissingKeywords("", "Java Go Rust")
	assert.Equal(t, []string{"java", "go", "rust"}, missing)
}

func TestScorer_IdenticalScenario(t *testing.T) {
	text := "identical text here"

	similarity, err := ComputeSimilarity(text, text)
	require.NoError(t, err)
	assert.Equal(t, 100.0, similarity)

	missing := ComputeMissingKeywords(text, text)
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestScorer_DegenerateInput(t *testing.T) {
	tests := []struct {
		name  string
		textA string
		textB string
	}{
		{"both empty", "", ""},
		{"only single characters", "a b c", "x"},
		{"only symbols", "!!!", "--- ..."},
		{"whitespace", "   \n\t", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeSimilarity(tt.textA, tt.textB)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ierrors.ErrDegenerateInput))

			var degenerate *ierrors.DegenerateInputError
			require.True(t, errors.As(err, &degenerate))
			assert.Equal(t, 2, degenerate.MinTermLength)
		})
	}
}

func TestScorer_SimilarityProperties(t *testing.T) {
	for _, a := range sampleTexts {
		for _, b := range sampleTexts {
			ab, errAB := ComputeSimilarity(a, b)
			ba, errBA := ComputeSimilarity(b, a)

			assert.Equal(t, errAB == nil, errBA == nil, "error symmetry for %q / %q", a, b)
			if errAB != nil {
				continue
			}
			assert.Equal(t, ab, ba, "symmetry for %q / %q", a, b)
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 100.0)
		}
	}
}

func TestScorer_SelfSimilarity(t *testing.T) {
	for _, text := range sampleTexts {
		similarity, err := ComputeSimilarity(text, text)
		if errors.Is(err, ierrors.ErrDegenerateInput) {
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, 100.0, similarity, "self similarity for %q", text)
	}
}

func TestScorer_SimilarityUsesTermFrequency(t *testing.T) {
	// resume vector (go:4, rust:1), jd vector (go:1, rust:1)
	similarity, err := ComputeSimilarity("go go go go rust", "Go Rust")
	require.NoError(t, err)
	// 5 / (sqrt(17) * sqrt(2)) = 0.8575
	assert.Equal(t, 85.75, similarity)
}

func TestScorer_SimilarityUsesRawText(t *testing.T) {
	// Normalization would turn "node.js" into "nodejs"; the vectorizer sees "node" and "js".
	similarity, err := ComputeSimilarity("node.js", "node js")
	require.NoError(t, err)
	assert.Equal(t, 100.0, similarity)
}

func TestScorer_GapCoveredResume(t *testing.T) {
	jd := "We need Python and SQL, with the AWS cloud."
	resume := "python sql aws cloud need"

	assert.Empty(t, ComputeMissingKeywords(resume, jd))
}

func TestScorer_GapEmptyJobDescription(t *testing.T) {
	missing := ComputeMissingKeywords("Python developer", "")
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestScorer_GapDisjointFromStopwordsAndResume(t *testing.T) {
	stopwords := DefaultStopwords()
	for _, resume := range sampleTexts {
		for _, jd := range sampleTexts {
			missing := ComputeMissingKeywords(resume, jd)
			resumeTokens := map[string]bool{}
			for _, token := range tokenizer.Normalize(resume) {
				resumeTokens[token] = true
			}
			seen := map[string]bool{}
			for _, token := range missing {
				assert.False(t, stopwords.Contains(token), "stopword %q in gap", token)
				assert.False(t, resumeTokens[token], "resume token %q in gap", token)
				assert.False(t, seen[token], "duplicate %q in gap", token)
				seen[token] = true
			}
		}
	}
}

func TestScorer_InjectedStopwords(t *testing.T) {
	scorer := NewScorer(Options{Stopwords: NewStopwordSet("looking", "SKILLS")})

	missing := scorer.Gap("Looking for a Python developer with AWS and SQL skills", "Python developer")
	assert.Equal(t, []string{"for", "a", "with", "aws", "and", "sql"}, missing)
}

func TestScorer_ZeroValueStopwords(t *testing.T) {
	scorer := NewScorer(Options{})

	missing := scorer.Gap("the aws", "")
	assert.Equal(t, []string{"the", "aws"}, missing)
}

func TestScorer_MinTermLength(t *testing.T) {
	scorer := NewScorer(Options{Stopwords: DefaultStopwords(), MinTermLength: 3})

	_, err := scorer.Similarity("go js", "ai ml")
	assert.ErrorIs(t, err, ierrors.ErrDegenerateInput)

	similarity, err := scorer.Similarity("go rust", "rust")
	require.NoError(t, err)
	assert.Equal(t, 100.0, similarity)
}

func TestScorer_FoldDiacritics(t *testing.T) {
	plain := NewDefaultScorer()
	folding := NewScorer(Options{Stopwords: DefaultStopwords(), FoldDiacritics: true})

	assert.Equal(t, []string{"resume"}, plain.Gap("resume", "résumé"))
	assert.Empty(t, folding.Gap("resume", "résumé"))

	similarity, err := folding.Similarity("Résumé", "resume")
	require.NoError(t, err)
	assert.Equal(t, 100.0, similarity)
}

func TestScorer_Analyze(t *testing.T) {
	scorer := NewDefaultScorer()

	result, err := scorer.Analyze("Python developer with SQL experience",
		"Looking for a Python developer with AWS and SQL skills")
	require.NoError(t, err)
	assert.Equal(t, 59.63, result.Similarity)
	assert.Equal(t, model.VerdictPartial, result.Verdict)
	assert.Equal(t, []string{"looking", "aws", "skills"}, result.MissingKeywords)
	assert.Equal(t, 3, result.MissingCount)
	assert.Equal(t, 5, result.ResumeTokens)
	assert.Equal(t, 10, result.JobTokens)

	strong, err := scorer.Analyze("identical text here", "identical text here")
	require.NoError(t, err)
	assert.Equal(t, model.VerdictStrong, strong.Verdict)

	low, err := scorer.Analyze("", "Java Go Rust")
	require.NoError(t, err)
	assert.Equal(t, model.VerdictLow, low.Verdict)
	assert.Equal(t, 0.0, low.Similarity)

	_, err = scorer.Analyze("", "")
	assert.ErrorIs(t, err, ierrors.ErrDegenerateInput)
}

func threshold(v float64) *float64 {
	return &v
}

func TestScorer_CustomThresholds(t *testing.T) {
	scorer := NewScorer(Options{
		Stopwords:             DefaultStopwords(),
		StrongMatchThreshold:  threshold(90),
		PartialMatchThreshold: threshold(20),
	})

	result, err := scorer.Analyze("go go go go rust", "Go Rust")
	require.NoError(t, err)
	assert.Equal(t, model.VerdictPartial, result.Verdict)
}

func TestScorer_ZeroThresholds(t *testing.T) {
	tests := []struct {
		name    string
		strong  *float64
		partial *float64
		want    model.Verdict
	}{
		{"unset thresholds use defaults", nil, nil, model.VerdictLow},
		{"zero partial threshold", nil, threshold(0), model.VerdictPartial},
		{"zero strong threshold", threshold(0), threshold(0), model.VerdictStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := NewScorer(Options{
				Stopwords:             DefaultStopwords(),
				StrongMatchThreshold:  tt.strong,
				PartialMatchThreshold: tt.partial,
			})

			result, err := scorer.Analyze("", "Java Go Rust")
			require.NoError(t, err)
			assert.Equal(t, 0.0, result.Similarity)
			assert.Equal(t, tt.want, result.Verdict)
		})
	}
}
