package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/hyperjump/lexica/internal/models"
)

const maxLineBytes = 16 * 1024 * 1024

// ParseToken splits raw into word and tag at its last '/'. Words may contain
// '/' themselves, e.g. "1/2/cd" is the word "1/2" tagged "cd".
// ok is false when raw has no '/'.
func ParseToken(raw string) (tok models.Token, ok bool) {
	i := strings.LastIndexByte(raw, '/')
	if i < 0 {
		return models.Token{}, false
	}
	return models.Token{Word: raw[:i], Tag: raw[i+1:]}, true
}

// rawToken is a whitespace-delimited corpus token and the line it was read from.
type rawToken struct {
	text string
	line int
}

func readTokensFile(path string) ([]rawToken, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &models.NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return readTokens(f)
}

func readTokens(r io.Reader) ([]rawToken, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var tokens []rawToken
	line := 0
	for scanner.Scan() {
		line++
		for _, field := range strings.Fields(scanner.Text()) {
			tokens = append(tokens, rawToken{text: field, line: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return tokens, nil
}
