package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hyperjump/lexica/internal/config"
	"github.com/hyperjump/lexica/internal/search"
	"github.com/hyperjump/lexica/internal/server"
	"github.com/hyperjump/lexica/internal/watcher"
	"github.com/hyperjump/lexica/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Load the configured vector table and serve similarity and frequency
queries over HTTP. The vector and corpus files are watched for changes unless
watching is disabled in the config or with --no-watch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, noWatch)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload data files on change")
	return cmd
}

func runServe(opts *rootOptions, noWatch bool) error {
	cfg, resolvedConfigPath, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	debugMode := cfg.Debug || opts.debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	engine, err := search.Open(cfg, logger)
	if err != nil {
		return err
	}

	var watchSvc server.WatchService
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Watch.EnabledOrDefault() && !noWatch {
		w, err := watcher.New(
			[]string{cfg.Data.VectorsPath, cfg.Data.CorpusPath},
			dataFileHandler(engine, cfg, logger),
			watcher.WithLogger(logger),
			watcher.WithDebounce(cfg.Watch.Debounce),
		)
		if err != nil {
			return err
		}
		if err := w.Start(watchCtx); err != nil {
			return err
		}
		defer w.Stop()
		watchSvc = w
	}

	srv := server.NewServer(engine, &cfg.Server, logger, watchSvc)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-errCh:
		return err
	}

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

// dataFileHandler routes a watcher event: the vector file is reloaded and a
// corpus file has its cached parse dropped.
func dataFileHandler(engine *search.Engine, cfg *config.Config, logger *zap.Logger) func(path string) {
	vectorsPath := absPath(cfg.Data.VectorsPath)
	corpusPath := absPath(cfg.Data.CorpusPath)
	return func(path string) {
		switch path {
		case vectorsPath:
			if err := engine.ReloadVectors(context.Background()); err != nil {
				logger.Warn("watch reload vectors failed", zap.String("path", path), zap.Error(err))
			}
		case corpusPath:
			engine.InvalidateCorpus(cfg.Data.CorpusPath)
			engine.InvalidateCorpus(path)
			logger.Info("corpus changed, cache dropped", zap.String("path", path))
		}
	}
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(abs)
}
