package scoring

import (
	"sort"
	"strings"
)

// defaultStopwords are the common English function words ignored by gap analysis.
var defaultStopwords = []string{
	"the", "and", "is", "in", "to", "of", "a", "for", "with", "on", "at", "by",
	"an", "be", "this", "that", "it", "as", "from", "or", "are", "was", "were",
	"will", "has", "have", "had", "but", "not", "if", "we", "you", "can", "may",
}

// StopwordSet is an immutable set of lowercase words excluded from gap analysis.
// The zero value is an empty set.
type StopwordSet struct {
	words map[string]struct{}
}

// NewStopwordSet builds a set from the given words, lowercasing and trimming them.
// Blank entries are ignored.
func NewStopwordSet(words ...string) StopwordSet {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return StopwordSet{words: set}
}

// DefaultStopwords returns the built-in English stopword set.
func DefaultStopwords() StopwordSet {
	return NewStopwordSet(defaultStopwords...)
}

// Contains reports whether token is a stopword.
func (s StopwordSet) Contains(token string) bool {
	_, ok := s.words[token]
	return ok
}

// Len returns the number of stopwords.
func (s StopwordSet) Len() int {
	return len(s.words)
}

// Words returns a sorted copy of the stopwords.
func (s StopwordSet) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// With returns a new set containing the receiver's words plus extra.
func (s StopwordSet) With(extra ...string) StopwordSet {
	return NewStopwordSet(append(s.Words(), extra...)...)
}
