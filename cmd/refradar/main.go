// Command refradar runs the message understanding pipeline over a stream of
// chat messages. Messages arrive as JSON lines on stdin or from a file; one
// result JSON line is emitted per message. Prometheus metrics are served
// while the stream is being processed.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/refradar/refradar/internal/config"
	"github.com/refradar/refradar/internal/domain"
	"github.com/refradar/refradar/internal/logger"
	"github.com/refradar/refradar/internal/matcher"
	"github.com/refradar/refradar/internal/pipeline"
	"github.com/refradar/refradar/internal/registry"
	"github.com/refradar/refradar/internal/telemetry"
)

const (
	// maxWindowMessages bounds the per-conversation history handed to
	// attribution.
	maxWindowMessages = 200

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "refradar: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yml", "path to YAML configuration")
	inputPath := flag.String("input", "-", "message stream file, - for stdin")
	seedPath := flag.String("seed", "", "optional JSON file of providers to preload")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp := telemetry.NewProvider()
	if cfg.Telemetry.Enabled {
		srv := serveMetrics(cfg.Telemetry.MetricsAddr, tp, log)
		defer shutdownMetrics(srv, log)
	}

	lookup, cleanup, err := openRegistry(ctx, cfg.Registry, *seedPath, log)
	if err != nil {
		return err
	}
	defer cleanup()

	pipe, err := pipeline.New(cfg, lookup, log, tp)
	if err != nil {
		return err
	}

	input := os.Stdin
	if *inputPath != "-" {
		f, err := os.Open(*inputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		input = f
	}

	return processStream(ctx, pipe, cfg, input, log)
}

// processStream runs every input message through the pipeline, maintaining a
// causally-ordered rolling window per conversation.
func processStream(ctx context.Context, pipe *pipeline.Pipeline, cfg *config.Config, input *os.File, log logger.Logger) error {
	windows := make(map[string][]domain.Message)
	out := json.NewEncoder(os.Stdout)

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			log.Info("interrupted, stopping stream")
			return nil
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg domain.Message
		if err := json.Unmarshal(line, &msg); err != nil {
			log.Warn("skipping unparseable line", logger.Error(err))
			continue
		}

		window := windows[msg.ConversationID]
		result, err := pipe.Process(ctx, msg, window)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				log.Warn("message rejected", logger.String("field", verr.Field))
				continue
			}
			return err
		}

		if err := out.Encode(result); err != nil {
			return fmt.Errorf("write result: %w", err)
		}

		windows[msg.ConversationID] = appendToWindow(window, msg, cfg.Attribution.DistantBand)
	}
	return scanner.Err()
}

// appendToWindow adds the processed message and evicts anything older than
// the distant attribution band, keeping the window bounded.
func appendToWindow(window []domain.Message, msg domain.Message, retain time.Duration) []domain.Message {
	window = append(window, msg)

	cutoff := msg.Timestamp.Add(-retain)
	start := 0
	for start < len(window) && window[start].Timestamp.Before(cutoff) {
		start++
	}
	if extra := len(window) - maxWindowMessages; extra > start {
		start = extra
	}
	return window[start:]
}

// openRegistry builds the configured provider lookup, optionally preloading
// it from a seed file.
func openRegistry(ctx context.Context, cfg config.RegistryConfig, seedPath string, log logger.Logger) (matcher.ProviderLookup, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		store, err := registry.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := seedProviders(ctx, seedPath, store.Add, log); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	default:
		store := registry.NewMemory()
		if err := seedProviders(ctx, seedPath, store.Add, log); err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func seedProviders(ctx context.Context, path string, add func(context.Context, domain.Provider) (domain.Provider, error), log logger.Logger) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var providers []domain.Provider
	if err := json.Unmarshal(data, &providers); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	for _, p := range providers {
		if _, err := add(ctx, p); err != nil {
			return fmt.Errorf("seed provider %s: %w", p.Name, err)
		}
	}
	log.Info("registry seeded", logger.Int("providers", len(providers)))
	return nil
}

func serveMetrics(addr string, tp *telemetry.Provider, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", tp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", logger.Error(err))
		}
	}()
	log.Info("metrics listening", logger.String("addr", addr))
	return srv
}

func shutdownMetrics(srv *http.Server, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("metrics shutdown", logger.Error(err))
	}
}
