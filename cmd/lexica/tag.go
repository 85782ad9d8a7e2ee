package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hyperjump/lexica/internal/cli"
	"github.com/hyperjump/lexica/internal/tagging"
	"github.com/spf13/cobra"
)

func newTagCmd(opts *rootOptions) *cobra.Command {
	var (
		perLine int
		table   bool
	)
	cmd := &cobra.Command{
		Use:   "tag [file]",
		Short: "Tag raw text into the word/tag corpus format",
		Long: `Tokenize raw text and tag every token with its part of speech. The output
is a word/tag corpus that the common command can count. Reads stdin when no
file is given.

Examples:
  lexica tag notes.txt > notes.tagged
  echo "The dog runs" | lexica tag --table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			text, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			tokens, err := tagging.Tag(string(text))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case opts.jsonOutput:
				return cli.WriteTokens(out, tokens, cli.OutputJSON)
			case table:
				return cli.WriteTokens(out, tokens, cli.OutputText)
			default:
				return tagging.WriteCorpus(out, tokens, perLine)
			}
		},
	}
	cmd.Flags().IntVar(&perLine, "per-line", 20, "tokens per output line (0 = one line)")
	cmd.Flags().BoolVar(&table, "table", false, "show tokens as a table")
	return cmd
}
