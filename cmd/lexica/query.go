package main

import (
	"context"

	"github.com/hyperjump/lexica/internal/cli"
	"github.com/hyperjump/lexica/internal/corpus"
	"github.com/hyperjump/lexica/internal/models"
	"github.com/hyperjump/lexica/internal/search"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// openEngine loads the vector table for a one-shot query. vectorsPath
// overrides the configured file when set.
func openEngine(opts *rootOptions, vectorsPath string) (*search.Engine, *zap.Logger, error) {
	cfg, logger, err := opts.setup()
	if err != nil {
		return nil, nil, err
	}
	if vectorsPath != "" {
		cfg.Data.VectorsPath = vectorsPath
	}
	engine, err := search.Open(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return engine, logger, nil
}

func newSimilarCmd(opts *rootOptions) *cobra.Command {
	var (
		limit   int
		vectors string
	)
	cmd := &cobra.Command{
		Use:   "similar <word> [word...]",
		Short: "List the words nearest to a word or a set of words",
		Long: `List the words whose vectors have the highest cosine similarity to the
query. With several words the query is their average vector. Query words are
never part of the result.

Examples:
  lexica similar king
  lexica similar -n 20 king queen
  lexica similar --json paris | jq '.results[0]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, logger, err := openEngine(opts, vectors)
			if err != nil {
				return err
			}
			defer logger.Sync()
			query := buildSimilarQuery(args, limit)
			resp, err := engine.Similar(context.Background(), query)
			if err != nil {
				return err
			}
			return cli.WriteSimilar(cmd.OutOrStdout(), resp, opts.format())
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of results (default from config)")
	cmd.Flags().StringVar(&vectors, "vectors", "", "vector file (overrides config)")
	return cmd
}

// buildSimilarQuery uses the single-word form for one argument so that the
// result excludes exactly that word.
func buildSimilarQuery(args []string, limit int) *models.SimilarQuery {
	if len(args) == 1 {
		return &models.SimilarQuery{Word: args[0], Limit: limit}
	}
	return &models.SimilarQuery{Words: args, Limit: limit}
}

func newVectorCmd(opts *rootOptions) *cobra.Command {
	var (
		vectors string
		maxDims int
	)
	cmd := &cobra.Command{
		Use:   "vector <word>",
		Short: "Print the vector of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, logger, err := openEngine(opts, vectors)
			if err != nil {
				return err
			}
			defer logger.Sync()
			resp, err := engine.Vector(context.Background(), args[0])
			if err != nil {
				return err
			}
			return cli.WriteVector(cmd.OutOrStdout(), resp, opts.format(), maxDims)
		},
	}
	cmd.Flags().StringVar(&vectors, "vectors", "", "vector file (overrides config)")
	cmd.Flags().IntVar(&maxDims, "max-dims", 10, "components shown in text output (0 = all)")
	return cmd
}

func newAverageCmd(opts *rootOptions) *cobra.Command {
	var (
		vectors string
		maxDims int
	)
	cmd := &cobra.Command{
		Use:   "average <word> [word...]",
		Short: "Print the element-wise mean of the vectors of words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, logger, err := openEngine(opts, vectors)
			if err != nil {
				return err
			}
			defer logger.Sync()
			resp, err := engine.Average(context.Background(), args)
			if err != nil {
				return err
			}
			return cli.WriteVector(cmd.OutOrStdout(), resp, opts.format(), maxDims)
		},
	}
	cmd.Flags().StringVar(&vectors, "vectors", "", "vector file (overrides config)")
	cmd.Flags().IntVar(&maxDims, "max-dims", 10, "components shown in text output (0 = all)")
	return cmd
}

func newCommonCmd(opts *rootOptions) *cobra.Command {
	var (
		limit       int
		corpusPath  string
		wordPattern string
		posPattern  string
		stem        bool
	)
	cmd := &cobra.Command{
		Use:   "common",
		Short: "Count the most common words, tags, or word/tag pairs in a corpus",
		Long: `Count tokens of a word/tag corpus. Only the axes given a pattern are
counted: --word alone counts words, --pos alone counts tags, and both count
whole word/tag tokens. Patterns are regular expressions anchored at the start.

Examples:
  lexica common --pos nn -n 5
  lexica common --word '.*' --pos 'vb' --corpus brown.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			if cmd.Flags().Changed("stem") {
				cfg.Corpus.Stem = stem
			}
			counter := corpus.NewCounter(corpus.WithLogger(logger), corpus.WithStemming(cfg.Corpus.Stem))
			query := &models.CommonQuery{Path: corpusPath, Limit: limit}
			if cmd.Flags().Changed("word") {
				query.WordPattern = &wordPattern
			}
			if cmd.Flags().Changed("pos") {
				query.POSPattern = &posPattern
			}
			resp, err := search.CountCommon(counter, cfg, query, logger)
			if err != nil {
				return err
			}
			return cli.WriteCommon(cmd.OutOrStdout(), resp, opts.format())
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of results (default from config)")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "tagged corpus file (default from config)")
	cmd.Flags().StringVarP(&wordPattern, "word", "w", "", "pattern the word must match")
	cmd.Flags().StringVarP(&posPattern, "pos", "p", "", "pattern the tag must match")
	cmd.Flags().BoolVar(&stem, "stem", false, "count stemmed words")
	return cmd
}
