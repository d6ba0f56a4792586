package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVocabulary(t *testing.T) {
	vocab := BuildVocabulary([]string{"sql", "python", "sql"}, []string{"aws", "python"})

	assert.Equal(t, []string{"aws", "python", "sql"}, vocab.Terms)
	assert.Equal(t, 3, vocab.Size())
	assert.Equal(t, 0, vocab.Index["aws"])
	assert.Equal(t, 2, vocab.Index["sql"])

	empty := BuildVocabulary(nil, []string{})
	assert.Equal(t, 0, empty.Size())
}

func TestVocabulary_Vectorize(t *testing.T) {
	vocab := BuildVocabulary([]string{"go", "rust"}, []string{"go", "java"})

	vec := vocab.Vectorize([]string{"go", "go", "rust", "python"})
	assert.Equal(t, 2.0, vec.Count("go"))
	assert.Equal(t, 1.0, vec.Count("rust"))
	assert.Equal(t, 0.0, vec.Count("python"), "terms outside the vocabulary are ignored")
	assert.Equal(t, []float64{2, 0, 1}, vec.dense()) // go, java, rust
	assert.InDelta(t, math.Sqrt(5), vec.Norm(), 1e-12)
}

func TestCosineSimilarity(t *testing.T) {
	vocab := BuildVocabulary([]string{"a1", "b1", "c1"})

	// (1, 0, 1) . (0, 1, 1) = 1, norms sqrt(2) each
	vecA := vocab.Vectorize([]string{"a1", "c1"})
	vecB := vocab.Vectorize([]string{"b1", "c1"})
	assert.InDelta(t, 0.5, CosineSimilarity(vecA, vecB), 1e-9)
	assert.InDelta(t, 1.0, CosineSimilarity(vecA, vecA), 1e-9)

	orthogonal := vocab.Vectorize([]string{"b1"})
	assert.Equal(t, 0.0, CosineSimilarity(vecA, orthogonal))

	zero := vocab.Vectorize(nil)
	assert.Equal(t, 0.0, CosineSimilarity(vecA, zero))
	assert.Equal(t, 0.0, CosineSimilarity(zero, zero))
	assert.Equal(t, 0.0, CosineSimilarity(nil, vecA))

	other := BuildVocabulary([]string{"a1", "c1"}).Vectorize([]string{"a1", "c1"})
	assert.Equal(t, 0.0, CosineSimilarity(vecA, other), "vectors over different vocabularies")
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		cos  float64
		want float64
	}{
		{0, 0},
		{1, 100},
		{0.5962848, 59.63},
		{0.12344, 12.34},
		{1.0000001, 100},
		{-0.1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roundPercent(tt.cos), "roundPercent(%v)", tt.cos)
	}
}
