// Package models defines the shared data structures for corpus counts, similarity queries, and their results.
package models

// Token is a word and its part-of-speech tag parsed from word/tag notation.
type Token struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

// String returns the token in word/tag notation.
func (t Token) String() string {
	return t.Word + "/" + t.Tag
}

// TokenCount is one frequency-ranked key of a corpus count. Depending on the
// active filters the key is a word, a tag, or a raw word/tag token.
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}
