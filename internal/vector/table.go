// Package vector provides an immutable in-memory word embedding table with
// average composition and exact brute-force cosine similarity search.
package vector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hyperjump/lexica/internal/models"
	"github.com/viterin/vek/vek32"
	"go.uber.org/zap"
)

const maxLineBytes = 4 * 1024 * 1024

// Table maps words to vectors of a single fixed dimensionality. A Table is
// never modified after construction and is safe for concurrent readers.
type Table struct {
	dimensions int
	words      []string       // row order
	index      map[string]int // word -> row
	data       []float32      // row-major, len(words)*dimensions
	norms      []float32
}

// LoadOption configures Load and Read.
type LoadOption func(*loadOptions)

type loadOptions struct {
	logger *zap.Logger
	source string
}

// WithLogger sets a logger for load progress and duplicate-word events.
func WithLogger(l *zap.Logger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSource names the input in FormatErrors produced by Read.
func WithSource(name string) LoadOption {
	return func(o *loadOptions) { o.source = name }
}

func newLoadOptions(opts []LoadOption) loadOptions {
	o := loadOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load reads a vector file: one entry per line, a word followed by
// whitespace-separated floats. The first entry fixes the dimensionality; any
// other length is a FormatError. A word that appears twice keeps its last
// vector.
func Load(path string, opts ...LoadOption) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &models.NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open vectors: %w", err)
	}
	defer f.Close()
	o := newLoadOptions(opts)
	if o.source == "" {
		o.source = path
	}
	return read(f, o)
}

// Read is Load over an open reader.
func Read(r io.Reader, opts ...LoadOption) (*Table, error) {
	return read(r, newLoadOptions(opts))
}

func read(r io.Reader, o loadOptions) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	b := newBuilder(o.logger)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, &models.FormatError{Source: o.source, Line: line, Token: fields[0], Reason: "expected a word followed by at least one number"}
		}
		vec := make([]float32, len(fields)-1)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, &models.FormatError{Source: o.source, Line: line, Token: field, Reason: "invalid number"}
			}
			vec[i] = float32(v)
		}
		if err := b.add(fields[0], vec); err != nil {
			return nil, &models.FormatError{Source: o.source, Line: line, Token: fields[0], Reason: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}
	t := b.build()
	o.logger.Debug("vectors loaded",
		zap.String("source", o.source),
		zap.Int("words", t.Size()),
		zap.Int("dimensions", t.Dimensions()),
	)
	return t, nil
}

// New builds a Table from parallel word and vector slices with the same
// rules as Load.
func New(words []string, vectors [][]float32) (*Table, error) {
	if len(words) != len(vectors) {
		return nil, fmt.Errorf("words and vectors length mismatch: %d != %d", len(words), len(vectors))
	}
	b := newBuilder(zap.NewNop())
	for i, w := range words {
		if len(vectors[i]) == 0 {
			return nil, &models.FormatError{Token: w, Reason: "empty vector"}
		}
		vec := make([]float32, len(vectors[i]))
		copy(vec, vectors[i])
		if err := b.add(w, vec); err != nil {
			return nil, &models.FormatError{Token: w, Reason: err.Error()}
		}
	}
	return b.build(), nil
}

type builder struct {
	dimensions int
	words      []string
	index      map[string]int
	rows       [][]float32
	logger     *zap.Logger
}

func newBuilder(logger *zap.Logger) *builder {
	return &builder{index: make(map[string]int), logger: logger}
}

func (b *builder) add(word string, vec []float32) error {
	if b.dimensions == 0 {
		b.dimensions = len(vec)
	} else if len(vec) != b.dimensions {
		return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(vec), b.dimensions)
	}
	if i, ok := b.index[word]; ok {
		b.logger.Debug("duplicate word, keeping last vector", zap.String("word", word))
		b.rows[i] = vec
		return nil
	}
	b.index[word] = len(b.words)
	b.words = append(b.words, word)
	b.rows = append(b.rows, vec)
	return nil
}

func (b *builder) build() *Table {
	t := &Table{
		dimensions: b.dimensions,
		words:      b.words,
		index:      b.index,
		data:       make([]float32, len(b.rows)*b.dimensions),
		norms:      make([]float32, len(b.rows)),
	}
	for i, row := range b.rows {
		copy(t.data[i*t.dimensions:(i+1)*t.dimensions], row)
		t.norms[i] = L2Norm(row)
	}
	return t
}

// Size returns the number of words in the table.
func (t *Table) Size() int {
	return len(t.words)
}

// Dimensions returns the vector dimensionality, or 0 for an empty table.
func (t *Table) Dimensions() int {
	return t.dimensions
}

// Contains reports whether word has a vector.
func (t *Table) Contains(word string) bool {
	_, ok := t.index[word]
	return ok
}

// Words returns the vocabulary in sorted order.
func (t *Table) Words() []string {
	out := append([]string(nil), t.words...)
	sort.Strings(out)
	return out
}

func (t *Table) row(i int) []float32 {
	return t.data[i*t.dimensions : (i+1)*t.dimensions : (i+1)*t.dimensions]
}

// Lookup returns a copy of the vector for word.
func (t *Table) Lookup(word string) ([]float32, error) {
	i, ok := t.index[word]
	if !ok {
		return nil, &models.NotFoundError{Word: word}
	}
	out := make([]float32, t.dimensions)
	copy(out, t.row(i))
	return out, nil
}

// AverageVector returns the element-wise mean of the vectors of words. The
// result has the table's dimensionality and does not depend on word order.
func (t *Table) AverageVector(words []string) ([]float32, error) {
	if len(words) == 0 {
		return nil, models.ErrEmptyInput
	}
	sum := make([]float32, t.dimensions)
	for _, w := range words {
		i, ok := t.index[w]
		if !ok {
			return nil, &models.NotFoundError{Word: w}
		}
		vek32.Add_Inplace(sum, t.row(i))
	}
	if len(words) > 1 {
		vek32.MulNumber_Inplace(sum, 1/float32(len(words)))
	}
	return sum, nil
}
