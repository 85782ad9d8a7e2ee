package models

import (
	"fmt"
	"strings"
)

const (
	// DefaultLimit is used when a query does not set a result count.
	DefaultLimit = 10
	// MaxLimit caps the result count of a single query.
	MaxLimit = 100
)

// SimilarQuery is a nearest-neighbour request for either a single word or a
// set of words whose vectors are averaged.
type SimilarQuery struct {
	Word  string   `json:"word,omitempty"`
	Words []string `json:"words,omitempty"`
	Limit int      `json:"n,omitempty"`
}

// Validate ensures exactly one of Word or Words is set and normalizes Limit
// into [1, maxLimit], using defaultLimit when unset.
func (q *SimilarQuery) Validate(defaultLimit, maxLimit int) error {
	q.Word = strings.TrimSpace(q.Word)
	if q.Word == "" && len(q.Words) == 0 {
		return fmt.Errorf("%w: word or words is required", ErrInvalidQuery)
	}
	if q.Word != "" && len(q.Words) > 0 {
		return fmt.Errorf("%w: word and words are mutually exclusive", ErrInvalidQuery)
	}
	for _, w := range q.Words {
		if strings.TrimSpace(w) == "" {
			return fmt.Errorf("%w: words must not contain empty entries", ErrInvalidQuery)
		}
	}
	q.Limit = clampLimit(q.Limit, defaultLimit, maxLimit)
	return nil
}

// Terms returns the query words: the single word, or the word set.
func (q *SimilarQuery) Terms() []string {
	if q.Word != "" {
		return []string{q.Word}
	}
	return q.Words
}

// CommonQuery is a frequency request over a tagged corpus. A nil pattern
// excludes that axis from the output.
type CommonQuery struct {
	Path        string  `json:"path,omitempty"`
	WordPattern *string `json:"word_pattern"`
	POSPattern  *string `json:"pos_pattern"`
	Limit       int     `json:"n,omitempty"`
}

// Validate normalizes Limit the same way SimilarQuery.Validate does. The
// patterns are compiled by the caller.
func (q *CommonQuery) Validate(defaultLimit, maxLimit int) error {
	if strings.TrimSpace(q.Path) == "" {
		return fmt.Errorf("%w: corpus path is required", ErrInvalidQuery)
	}
	q.Limit = clampLimit(q.Limit, defaultLimit, maxLimit)
	return nil
}

func clampLimit(limit, defaultLimit, maxLimit int) int {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
