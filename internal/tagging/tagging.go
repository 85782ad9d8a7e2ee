// Package tagging converts raw text into the word/tag corpus format.
package tagging

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/lexica/internal/models"
	"github.com/jdkato/prose/v2"
)

// Tag tokenizes text and assigns each token a lowercased Penn Treebank
// part-of-speech tag.
func Tag(text string) ([]models.Token, error) {
	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tag text: %w", err)
	}
	tokens := doc.Tokens()
	out := make([]models.Token, 0, len(tokens))
	for _, tok := range tokens {
		word := strings.Join(strings.Fields(tok.Text), "_")
		if word == "" {
			continue
		}
		tag := strings.ToLower(tok.Tag)
		if tag == "" {
			tag = "unk"
		}
		out = append(out, models.Token{Word: word, Tag: tag})
	}
	return out, nil
}

// WriteCorpus writes tokens in word/tag notation, perLine tokens per line
// (all on one line when perLine <= 0).
func WriteCorpus(w io.Writer, tokens []models.Token, perLine int) error {
	bw := bufio.NewWriter(w)
	for i, tok := range tokens {
		if i > 0 {
			sep := " "
			if perLine > 0 && i%perLine == 0 {
				sep = "\n"
			}
			if _, err := bw.WriteString(sep); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(tok.String()); err != nil {
			return err
		}
	}
	if len(tokens) > 0 {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
