package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"slidecast/internal/config"
	"slidecast/internal/images"
	"slidecast/internal/logger"
	"slidecast/internal/metrics"
	"slidecast/internal/pipeline"
	"slidecast/internal/probe"
	"slidecast/internal/scheduler"
	"slidecast/internal/synth"
	"slidecast/internal/watcher"
	"slidecast/pkg/executor"
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// .env carries API keys in development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Slidecast Narration Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, %d cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Concurrency: %d jobs, %d TTS, %d image fetches",
		cfg.Concurrency.MaxJobs, cfg.Concurrency.MaxTTS, cfg.Concurrency.MaxImages)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	if _, err := exec.LookPath(cfg.FFmpeg.BinaryPath); err != nil {
		log.Warn(ctx, "ffmpeg not found at %q, merge and probe fallbacks will degrade", cfg.FFmpeg.BinaryPath)
	}

	prober := probe.New(cfg, exec, log)
	synthesizer := synth.New(cfg, log)
	fetcher := images.New(cfg, log)
	sched := scheduler.New(cfg, synthesizer, fetcher, exec, log)
	pipe := pipeline.New(cfg, sched, prober, log)

	w, err := watcher.New(cfg.Paths.Input, pipe.Process, log, cfg.Concurrency.MaxJobs)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)

	var metricsSrv *metrics.Server
	if cfg.Metrics.Addr != "" {
		metricsSrv = metrics.NewServer(cfg.Metrics.Addr, log)
		go func() {
			if err := metricsSrv.Start(ctx); err != nil {
				errChan <- err
			}
		}()
	}

	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline ready")
	log.Info(ctx, "Job inbox: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Speech service: %s", cfg.TTS.BaseURL)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Fatal: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn(ctx, "Metrics server shutdown: %v", err)
		}
	}

	log.Info(ctx, "Pipeline stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
