package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/khmer-numerals/internal/config"
	"github.com/khmer-numerals/internal/metrics"
	"github.com/khmer-numerals/internal/transport/rest"
	"github.com/khmer-numerals/pkg/khmer"
)

// Run is the server entry point. It loads configuration, initializes the
// logger and metrics, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("output_system", cfg.Converter.OutputSystem),
	)

	srv, err := NewServer(cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return Serve(ctx, srv, ln, cfg.Server, logger)
}

// NewServer builds the HTTP server with routes, middleware and metrics
// registered in reg.
func NewServer(cfg *config.Config, logger *slog.Logger, reg *prometheus.Registry) (*http.Server, error) {
	system, err := cfg.Converter.System()
	if err != nil {
		return nil, err
	}

	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}
	rec, err := metrics.NewPrometheus(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	conv, err := NewConverter(cfg.Converter, logger)
	if err != nil {
		return nil, err
	}

	convert := rest.NewConvertHandler(conv, system, cfg.Converter.MaxRequestBytes, rec, logger)
	health := rest.NewHealthHandler(BuildVersion())

	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      rest.NewRouter(convert, health, reg, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}, nil
}

// NewConverter returns the shared default converter, or one built over the
// configured lexicon file.
func NewConverter(cfg config.ConverterConfig, logger *slog.Logger) (*khmer.Converter, error) {
	conv := khmer.DefaultConverter()
	if cfg.LexiconPath != "" {
		lex, err := khmer.LoadLexicon(cfg.LexiconPath)
		if err != nil {
			return nil, err
		}
		conv = khmer.NewConverter(lex)
	}

	logger.Info("lexicon loaded",
		slog.String("path", cfg.LexiconPath),
		slog.Int("morphemes", len(conv.Lexicon().Morphemes())),
		slog.Int("max_word_length", conv.Lexicon().MaxWordLength()),
	)
	return conv, nil
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down within the configured timeout.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, cfg config.ServerConfig, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
