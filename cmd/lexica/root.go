package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperjump/lexica/internal/cli"
	"github.com/hyperjump/lexica/internal/config"
	"github.com/hyperjump/lexica/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/lexica/config.yaml"

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	jsonOutput bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "lexica",
		Short: "Lexica - word vector and tagged corpus analytics",
		Long: `Lexica answers nearest-neighbour queries over pretrained word vectors
and counts words and part-of-speech tags in word/tag corpora.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "config file path")
	flags.BoolVar(&opts.jsonOutput, "json", false, "write results as JSON")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newServeCmd(opts),
		newSimilarCmd(opts),
		newVectorCmd(opts),
		newAverageCmd(opts),
		newCommonCmd(opts),
		newTagCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) format() cli.OutputFormat {
	return cli.ParseOutputFormat(o.jsonOutput)
}

// loadConfig resolves the config for a command. When path is the default and
// does not exist, config.yaml in the current directory is tried, and failing
// that the environment and built-in defaults are used.
// Returns the config and the path that was actually loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		candidates := []string{defaultConfigPath}
		if cwd, err := os.Getwd(); err == nil {
			candidates = append([]string{filepath.Join(cwd, "config.yaml")}, candidates...)
		}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				cfg, err := config.Load(candidate)
				if err != nil {
					return nil, "", err
				}
				return cfg, candidate, nil
			}
		}
		cfg, err := config.Default()
		if err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// setup loads the config and builds a logger for a one-shot command.
func (o *rootOptions) setup() (*config.Config, *zap.Logger, error) {
	cfg, _, err := loadConfig(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.NewCommandLogger(cfg.Debug || o.debug)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lexica version %s\n", version)
		},
	}
}
