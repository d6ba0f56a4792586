package scoring

import (
	"math"
	"sort"
)

// Vocabulary is the sorted union of terms seen across a pair of documents.
type Vocabulary struct {
	Terms []string
	Index map[string]int
}

// BuildVocabulary collects the unique terms of every input slice.
// Terms are sorted so that vectors built over the vocabulary are iterated
// in the same order regardless of argument order.
func BuildVocabulary(termLists ...[]string) *Vocabulary {
	seen := make(map[string]struct{})
	for _, terms := range termLists {
		for _, term := range terms {
			seen[term] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(seen))
	for term := range seen {
		sorted = append(sorted, term)
	}
	sort.Strings(sorted)

	index := make(map[string]int, len(sorted))
	for i, term := range sorted {
		index[term] = i
	}
	return &Vocabulary{Terms: sorted, Index: index}
}

// Size returns the number of terms in the vocabulary.
func (v *Vocabulary) Size() int {
	return len(v.Terms)
}

// TermVector is a raw term-frequency vector over a Vocabulary.
// Only non-zero counts are stored.
type TermVector struct {
	vocab  *Vocabulary
	counts map[string]float64
	norm   float64
}

// Vectorize counts the occurrences of each vocabulary term in terms.
// Terms outside the vocabulary are ignored.
func (v *Vocabulary) Vectorize(terms []string) *TermVector {
	counts := make(map[string]float64)
	for _, term := range terms {
		if _, ok := v.Index[term]; ok {
			counts[term]++
		}
	}

	var sumSquares float64
	for _, term := range v.Terms {
		c := counts[term]
		sumSquares += c * c
	}

	return &TermVector{
		vocab:  v,
		counts: counts,
		norm:   math.Sqrt(sumSquares),
	}
}

// Count returns the frequency of term in the vector.
func (tv *TermVector) Count(term string) float64 {
	return tv.counts[term]
}

// Norm returns the Euclidean norm of the vector.
func (tv *TermVector) Norm() float64 {
	return tv.norm
}

// dense returns the vector as a slice aligned with the vocabulary's Terms.
func (tv *TermVector) dense() []float64 {
	dense := make([]float64, tv.vocab.Size())
	for i, term := range tv.vocab.Terms {
		dense[i] = tv.counts[term]
	}
	return dense
}

// CosineSimilarity computes the cosine of the angle between two vectors built
// over the same vocabulary. Returns 0 if either vector is nil, has zero norm
// or was built over a different vocabulary.
func CosineSimilarity(a, b *TermVector) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 || a.vocab != b.vocab {
		return 0
	}

	var dot float64
	da, db := a.dense(), b.dense()
	for i := range da {
		dot += da[i] * db[i]
	}

	cos := dot / (a.norm * b.norm)
	if cos > 1 {
		return 1
	}
	if cos < 0 {
		return 0
	}
	return cos
}

// roundPercent converts a cosine in [0, 1] to a percentage rounded to two decimals.
func roundPercent(cos float64) float64 {
	pct := math.Round(cos*100*100) / 100
	return math.Min(100, math.Max(0, pct))
}
