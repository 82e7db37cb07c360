package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"goaltrack/internal/auth"
	"goaltrack/internal/config"
	"goaltrack/internal/goals"
	"goaltrack/internal/llm"
	"goaltrack/internal/logging"
	"goaltrack/internal/schedule"
	"goaltrack/internal/server"
	"goaltrack/internal/stats"
	"goaltrack/internal/store"
	"goaltrack/internal/validation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the goaltrack HTTP server",
	Long: `Starts the HTTP API, watching the config file for changes.

Without a GEMINI_API_KEY the server still runs: schedule generation uses
the generic fallback, concept grading auto-accepts, and chat answers with
a fixed notice.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logging.Initialize(cfg.Logging.Dir, logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return err
	}
	defer logging.CloseAll()
	logging.Boot("goaltrack %s starting", cfg.Version)

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var client llm.Client
	if cfg.LLM.APIKey == "" {
		logger.Warn("no API key configured, AI features degrade to fallbacks")
		client = llm.NewDisabled()
	} else {
		client, err = llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:     cfg.LLM.APIKey,
			Model:      cfg.LLM.Model,
			Timeout:    cfg.LLMTimeout(),
			MaxRetries: cfg.LLM.MaxRetries,
		})
		if err != nil {
			return err
		}
	}

	generator := schedule.NewGenerator(client)
	srv := server.New(server.Options{
		Auth:      auth.NewService(st, cfg.Auth.CookieName, cfg.SessionTTL()),
		Goals:     goals.NewService(st, generator),
		Stats:     stats.NewService(st),
		Grader:    validation.NewGrader(client),
		Generator: generator,
		Client:    client,
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		logger.Warn("config watcher unavailable", zap.Error(err))
		watcher = nil
	} else if err := watcher.Start(ctx); err != nil {
		logger.Warn("config watcher failed to start", zap.Error(err))
		watcher = nil
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		if watcher != nil {
			watcher.Stop()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
