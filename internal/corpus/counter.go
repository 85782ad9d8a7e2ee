package corpus

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/hyperjump/lexica/internal/models"
	"github.com/kljensen/snowball/english"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const defaultCacheTTL = 10 * time.Minute

// MostCommon reads the tagged corpus at path and returns its n most frequent
// keys. The key of each entry depends on which filters are active:
//
//	word absent,  pos absent:  raw word/tag token (no filtering)
//	word absent,  pos pattern: tag, retained when the tag matches
//	word pattern, pos absent:  word, retained when the word matches
//	word pattern, pos pattern: raw word/tag token, retained when both match
//
// Counts are sorted descending; ties keep first-encountered order. A token
// without '/' is a FormatError whenever a filter is active.
func MostCommon(path string, word, pos Filter, n int) ([]models.TokenCount, error) {
	tokens, err := readTokensFile(path)
	if err != nil {
		return nil, err
	}
	return count(path, tokens, word, pos, n, nil)
}

// MostCommonReader is MostCommon over an already open corpus. source names
// the input in errors.
func MostCommonReader(r io.Reader, source string, word, pos Filter, n int) ([]models.TokenCount, error) {
	tokens, err := readTokens(r)
	if err != nil {
		return nil, err
	}
	return count(source, tokens, word, pos, n, nil)
}

// Counter answers repeated frequency queries over corpus files, keeping each
// parsed corpus in an expiring cache until the file changes.
type Counter struct {
	cache  *cache.Cache
	ttl    time.Duration
	stem   bool
	logger *zap.Logger
}

// CounterOption configures a Counter.
type CounterOption func(*Counter)

// WithLogger sets the logger used for cache and parse events.
func WithLogger(l *zap.Logger) CounterOption {
	return func(c *Counter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCacheTTL sets how long a parsed corpus stays cached.
func WithCacheTTL(d time.Duration) CounterOption {
	return func(c *Counter) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithStemming reduces words to their English Snowball stem (lowercased)
// before they are matched and counted, so "runs" and "running" share a key.
// It applies only while the word axis is active.
func WithStemming(enabled bool) CounterOption {
	return func(c *Counter) { c.stem = enabled }
}

// NewCounter creates a Counter.
func NewCounter(opts ...CounterOption) *Counter {
	c := &Counter{
		ttl:    defaultCacheTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = cache.New(c.ttl, 2*c.ttl)
	return c
}

type cachedCorpus struct {
	modTime time.Time
	size    int64
	tokens  []rawToken
}

// MostCommon is the package-level MostCommon served from the Counter's cache.
func (c *Counter) MostCommon(path string, word, pos Filter, n int) ([]models.TokenCount, error) {
	tokens, err := c.tokens(path)
	if err != nil {
		return nil, err
	}
	var normalize func(string) string
	if c.stem {
		normalize = stem
	}
	return count(path, tokens, word, pos, n, normalize)
}

// Invalidate drops the cached parse of path.
func (c *Counter) Invalidate(path string) {
	c.cache.Delete(path)
	c.logger.Debug("corpus cache invalidated", zap.String("path", path))
}

// Cached returns the number of corpora currently cached.
func (c *Counter) Cached() int {
	return c.cache.ItemCount()
}

func (c *Counter) tokens(path string) ([]rawToken, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &models.NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat corpus: %w", err)
	}
	if v, ok := c.cache.Get(path); ok {
		entry := v.(*cachedCorpus)
		if entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
			return entry.tokens, nil
		}
	}
	tokens, err := readTokensFile(path)
	if err != nil {
		return nil, err
	}
	c.cache.Set(path, &cachedCorpus{modTime: info.ModTime(), size: info.Size(), tokens: tokens}, cache.DefaultExpiration)
	c.logger.Debug("corpus parsed", zap.String("path", path), zap.Int("tokens", len(tokens)))
	return tokens, nil
}

func stem(word string) string {
	return english.Stem(word, false)
}

func count(source string, tokens []rawToken, word, pos Filter, n int, normalize func(string) string) ([]models.TokenCount, error) {
	split := word.Active() || pos.Active()
	index := make(map[string]int)
	var counts []models.TokenCount
	for _, raw := range tokens {
		key := raw.text
		if split {
			tok, ok := ParseToken(raw.text)
			if !ok {
				return nil, &models.FormatError{Source: source, Line: raw.line, Token: raw.text, Reason: "token has no '/' separating word and tag"}
			}
			if normalize != nil && word.Active() {
				tok.Word = normalize(tok.Word)
			}
			if !word.Match(tok.Word) || !pos.Match(tok.Tag) {
				continue
			}
			switch {
			case word.Active() && pos.Active():
				key = tok.String()
			case word.Active():
				key = tok.Word
			default:
				key = tok.Tag
			}
		}
		if i, seen := index[key]; seen {
			counts[i].Count++
			continue
		}
		index[key] = len(counts)
		counts = append(counts, models.TokenCount{Token: key, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if n <= 0 {
		return []models.TokenCount{}, nil
	}
	if n < len(counts) {
		counts = counts[:n]
	}
	if counts == nil {
		counts = []models.TokenCount{}
	}
	return counts, nil
}
