package suggest

import (
	"sort"
	"unicode/utf8"
)

// Suggester finds vocabulary words within a small edit distance of a query.
// It is immutable after construction.
type Suggester struct {
	words          []string
	lengths        []int
	maxDistance    int
	maxSuggestions int
}

// Option configures a Suggester.
type Option func(*Suggester)

// WithMaxDistance sets the maximum edit distance for suggestions.
func WithMaxDistance(d int) Option {
	return func(s *Suggester) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithMaxSuggestions sets the maximum number of suggestions returned.
func WithMaxSuggestions(n int) Option {
	return func(s *Suggester) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// New creates a Suggester over words.
func New(words []string, opts ...Option) *Suggester {
	s := &Suggester{
		words:          append([]string(nil), words...),
		maxDistance:    2,
		maxSuggestions: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lengths = make([]int, len(s.words))
	for i, w := range s.words {
		s.lengths[i] = utf8.RuneCountInString(w)
	}
	return s
}

// Suggest returns up to the configured number of words within the maximum
// distance of word, closest first and alphabetically among equals. word
// itself is never suggested.
func (s *Suggester) Suggest(word string) []string {
	if s == nil || word == "" {
		return nil
	}
	n := utf8.RuneCountInString(word)
	type candidate struct {
		word     string
		distance int
	}
	var found []candidate
	for i, w := range s.words {
		if w == word || abs(s.lengths[i]-n) > s.maxDistance {
			continue
		}
		if d := Distance(word, w); d <= s.maxDistance {
			found = append(found, candidate{word: w, distance: d})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].word < found[j].word
	})
	if len(found) == 0 {
		return nil
	}
	if len(found) > s.maxSuggestions {
		found = found[:s.maxSuggestions]
	}
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.word
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
