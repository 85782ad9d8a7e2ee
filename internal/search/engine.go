// Package search provides the query engine that serves similarity and
// frequency requests over the current vector table and tagged corpora.
package search

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hyperjump/lexica/internal/config"
	"github.com/hyperjump/lexica/internal/corpus"
	"github.com/hyperjump/lexica/internal/models"
	"github.com/hyperjump/lexica/internal/storage"
	"github.com/hyperjump/lexica/internal/suggest"
	"github.com/hyperjump/lexica/internal/vector"
	"go.uber.org/zap"
)

// snapshot is an immutable view of one loaded table. Reloads replace the
// whole snapshot; cache keys carry its generation.
type snapshot struct {
	table      *vector.Table
	suggester  *suggest.Suggester
	generation uint64
	loadedAt   time.Time
}

// Engine answers queries against the current vector table. It is safe for
// concurrent use.
type Engine struct {
	current  atomic.Pointer[snapshot]
	counter  *corpus.Counter
	results  *lru.Cache[string, []models.WordScore]
	config   *config.Config
	logger   *zap.Logger
	reloadMu sync.Mutex
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine serving table. counter may be nil, in which case
// a default Counter is used. cfg may be nil, in which case defaults apply.
func NewEngine(table *vector.Table, counter *corpus.Counter, cfg *config.Config, opts ...Option) (*Engine, error) {
	if table == nil {
		return nil, errors.New("vector table is required")
	}
	if cfg == nil {
		cfg = &config.Config{}
		config.ApplyDefaults(cfg)
	}
	e := &Engine{
		counter: counter,
		config:  cfg,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.counter == nil {
		e.counter = corpus.NewCounter(corpus.WithLogger(e.logger))
	}
	results, err := lru.New[string, []models.WordScore](max(cfg.Search.CacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	e.results = results
	e.install(table)
	return e, nil
}

// Open loads the vector file named by cfg and returns an engine serving it.
func Open(cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	if cfg.Data.VectorsPath == "" {
		return nil, errors.New("vectors path is not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()
	table, err := vector.Load(cfg.Data.VectorsPath, vector.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("load vectors: %w", err)
	}
	logger.Info("vector table loaded",
		zap.String("path", cfg.Data.VectorsPath),
		zap.Int("words", table.Size()),
		zap.Int("dimensions", table.Dimensions()),
		zap.Duration("elapsed", time.Since(start)),
	)
	counter := corpus.NewCounter(
		corpus.WithLogger(logger),
		corpus.WithCacheTTL(cfg.Corpus.CacheTTL),
		corpus.WithStemming(cfg.Corpus.Stem),
	)
	return NewEngine(table, counter, cfg, WithLogger(logger))
}

func (e *Engine) install(table *vector.Table) {
	var generation uint64 = 1
	if prev := e.current.Load(); prev != nil {
		generation = prev.generation + 1
	}
	e.current.Store(&snapshot{
		table: table,
		suggester: suggest.New(table.Words(),
			suggest.WithMaxDistance(e.config.Search.SuggestionDistance),
			suggest.WithMaxSuggestions(e.config.Search.MaxSuggestions),
		),
		generation: generation,
		loadedAt:   time.Now(),
	})
	e.results.Purge()
}

// Table returns the table currently being served.
func (e *Engine) Table() *vector.Table {
	return e.current.Load().table
}

// Similar returns the nearest neighbours of a word, or of the average vector
// of a word set. Query words never appear in the results.
func (e *Engine) Similar(ctx context.Context, q *models.SimilarQuery) (*models.SimilarResponse, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(e.config.Search.DefaultLimit, e.config.Search.MaxLimit); err != nil {
		return nil, err
	}
	snap := e.current.Load()
	terms := q.Terms()
	key := cacheKey(snap.generation, q.Word != "", terms, q.Limit)
	if results, ok := e.results.Get(key); ok {
		e.hits.Add(1)
		return &models.SimilarResponse{
			Query:     terms,
			Results:   slices.Clone(results),
			QueryTime: time.Since(start).Milliseconds(),
			Cached:    true,
		}, nil
	}
	e.misses.Add(1)

	var (
		results []models.WordScore
		err     error
	)
	if q.Word != "" {
		results, err = snap.table.MostSimilar(q.Word, q.Limit)
	} else {
		results, err = snap.table.MostSimilarToWords(q.Words, q.Limit)
	}
	if err != nil {
		return nil, e.annotate(snap, err)
	}
	e.results.Add(key, slices.Clone(results))
	e.logger.Debug("similarity query",
		zap.Strings("terms", terms),
		zap.Int("limit", q.Limit),
		zap.Int("results", len(results)),
	)
	return &models.SimilarResponse{
		Query:     terms,
		Results:   results,
		QueryTime: time.Since(start).Milliseconds(),
	}, nil
}

// Vector returns the stored vector of word.
func (e *Engine) Vector(ctx context.Context, word string) (*models.VectorResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := e.current.Load()
	v, err := snap.table.Lookup(word)
	if err != nil {
		return nil, e.annotate(snap, err)
	}
	return &models.VectorResponse{Words: []string{word}, Vector: v, Dimensions: len(v)}, nil
}

// Average returns the element-wise mean of the vectors of words.
func (e *Engine) Average(ctx context.Context, words []string) (*models.VectorResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := e.current.Load()
	v, err := snap.table.AverageVector(words)
	if err != nil {
		return nil, e.annotate(snap, err)
	}
	return &models.VectorResponse{Words: words, Vector: v, Dimensions: len(v)}, nil
}

// Common returns the most frequent keys of a tagged corpus. An empty path
// falls back to the configured corpus; any other path must be the configured
// corpus or lie under one of the configured corpus directories.
func (e *Engine) Common(ctx context.Context, q *models.CommonQuery) (*models.CommonResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.Path != "" && !corpusAllowed(e.config.Data, q.Path) {
		e.logger.Warn("corpus path rejected", zap.String("path", q.Path))
		return nil, fmt.Errorf("%w: corpus path %q is outside the configured data", models.ErrForbidden, q.Path)
	}
	return CountCommon(e.counter, e.config, q, e.logger)
}

// corpusAllowed reports whether path names the configured corpus or a file
// under one of the configured corpus directories, after resolving symlinks.
func corpusAllowed(data config.DataConfig, path string) bool {
	target := resolvePath(path)
	if target == "" {
		return false
	}
	if data.CorpusPath != "" && target == resolvePath(data.CorpusPath) {
		return true
	}
	for _, dir := range data.CorpusDirs {
		root := resolvePath(dir)
		if root == "" {
			continue
		}
		rel, err := filepath.Rel(root, target)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return true
	}
	return false
}

func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return filepath.Clean(abs)
}

// CountCommon answers a frequency query with counter. It needs no vector
// table, so one-shot commands use it directly.
func CountCommon(counter *corpus.Counter, cfg *config.Config, q *models.CommonQuery, logger *zap.Logger) (*models.CommonResponse, error) {
	start := time.Now()
	query := *q
	if query.Path == "" {
		query.Path = cfg.Data.CorpusPath
	}
	if err := query.Validate(cfg.Search.DefaultLimit, cfg.Search.MaxLimit); err != nil {
		return nil, err
	}
	word, err := corpus.OptionalPattern(query.WordPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: word_pattern: %v", models.ErrInvalidQuery, err)
	}
	pos, err := corpus.OptionalPattern(query.POSPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pos_pattern: %v", models.ErrInvalidQuery, err)
	}
	counts, err := counter.MostCommon(query.Path, word, pos, query.Limit)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("frequency query",
			zap.String("path", query.Path),
			zap.Stringer("word", word),
			zap.Stringer("pos", pos),
			zap.Int("results", len(counts)),
		)
	}
	return &models.CommonResponse{
		Source:    query.Path,
		Results:   counts,
		QueryTime: time.Since(start).Milliseconds(),
	}, nil
}

// ReloadVectors rebuilds the table from the configured vector file and swaps
// it in. On failure the current table keeps serving.
func (e *Engine) ReloadVectors(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()
	path := e.config.Data.VectorsPath
	if path == "" {
		return errors.New("vectors path is not configured")
	}
	table, err := vector.Load(path, vector.WithLogger(e.logger))
	if err != nil {
		e.logger.Warn("vector reload failed, keeping current table", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("reload vectors: %w", err)
	}
	e.install(table)
	e.logger.Info("vector table reloaded",
		zap.String("path", path),
		zap.Int("words", table.Size()),
		zap.Uint64("generation", e.current.Load().generation),
	)
	return nil
}

// InvalidateCorpus drops the cached parse of a corpus file.
func (e *Engine) InvalidateCorpus(path string) {
	e.counter.Invalidate(path)
}

// Status describes the state of the engine.
type Status struct {
	Words         int       `json:"words"`
	Dimensions    int       `json:"dimensions"`
	Generation    uint64    `json:"generation"`
	LoadedAt      time.Time `json:"loaded_at"`
	VectorsPath   string    `json:"vectors_path,omitempty"`
	CorpusPath    string    `json:"corpus_path,omitempty"`
	CacheEntries  int       `json:"cache_entries"`
	CacheHits     uint64    `json:"cache_hits"`
	CacheMisses   uint64    `json:"cache_misses"`
	CachedCorpora int       `json:"cached_corpora"`

	Files          []storage.FileStat `json:"files,omitempty"`
	DiskUsageBytes int64              `json:"disk_usage_bytes"`
}

// Status returns a snapshot of table and cache statistics.
func (e *Engine) Status() Status {
	snap := e.current.Load()
	files, err := storage.Stat(e.config.Data.VectorsPath, e.config.Data.CorpusPath)
	if err != nil {
		e.logger.Debug("status: stat data files failed", zap.Error(err))
	}
	return Status{
		Words:         snap.table.Size(),
		Dimensions:    snap.table.Dimensions(),
		Generation:    snap.generation,
		LoadedAt:      snap.loadedAt,
		VectorsPath:   e.config.Data.VectorsPath,
		CorpusPath:    e.config.Data.CorpusPath,
		CacheEntries:  e.results.Len(),
		CacheHits:     e.hits.Load(),
		CacheMisses:   e.misses.Load(),
		CachedCorpora: e.counter.Cached(),

		Files:          files,
		DiskUsageBytes: storage.DiskUsageBytes(files),
	}
}

// annotate attaches spelling suggestions to word-level not-found errors.
func (e *Engine) annotate(snap *snapshot, err error) error {
	var nf *models.NotFoundError
	if errors.As(err, &nf) && nf.Word != "" && len(nf.Suggestions) == 0 {
		nf.Suggestions = snap.suggester.Suggest(nf.Word)
	}
	return err
}

func cacheKey(generation uint64, single bool, terms []string, limit int) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(generation, 10))
	if single {
		b.WriteString("|w|")
	} else {
		b.WriteString("|s|")
	}
	b.WriteString(strconv.Itoa(limit))
	for _, t := range terms {
		b.WriteByte(0)
		b.WriteString(t)
	}
	return b.String()
}
