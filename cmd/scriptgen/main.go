// scriptgen generates a presentation script for a topic with Gemini and
// drops it into the pipeline's job inbox, where the watcher picks it up.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"

	"slidecast/internal/config"
	"slidecast/internal/logger"
	"slidecast/internal/slides"
)

var reSlug = regexp.MustCompile(`[^a-z0-9]+`)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	topic := flag.String("topic", "", "presentation topic (required)")
	lang := flag.String("lang", "en", "language code for narration")
	voice := flag.String("voice", "", "narration voice, defaults by language")
	out := flag.String("out", "", "output path, defaults to <inbox>/<topic-slug>.json")
	flag.Parse()

	if *topic == "" {
		fmt.Fprintln(os.Stderr, "Usage: scriptgen -topic \"...\" [-lang en] [-voice ...] [-out path]")
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log := logger.New(cfg.Logging.Level)

	apiKeys := cfg.Gemini.APIKeys
	if env := os.Getenv("GEMINI_API_KEY"); env != "" {
		apiKeys = append([]string{env}, apiKeys...)
	}
	if len(apiKeys) == 0 {
		log.Error(ctx, "No Gemini API keys configured (gemini.api_keys or GEMINI_API_KEY)")
		os.Exit(1)
	}

	log.Info(ctx, "Generating script for %q (%s) with %s", *topic, *lang, cfg.Gemini.Model)

	stream, errCh := slides.NewGenerator(apiKeys, cfg.Gemini.Model, *topic, *lang, log).Stream(ctx)

	script := &slides.Script{
		Title: *topic,
		Lang:  *lang,
		Voice: *voice,
	}
	for slide := range stream {
		script.Slides = append(script.Slides, slide)
	}
	for err := range errCh {
		if err != nil {
			log.Error(ctx, "Generation failed: %v", err)
			os.Exit(1)
		}
	}

	if len(script.Slides) > 0 && script.Slides[0].Type == slides.TypeTitle {
		script.Title = script.Slides[0].Title
	}

	dest := *out
	if dest == "" {
		if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
			log.Error(ctx, "Create inbox: %v", err)
			os.Exit(1)
		}
		dest = filepath.Join(cfg.Paths.Input, slugify(*topic)+".json")
	}

	if err := slides.SaveScript(script, dest); err != nil {
		log.Error(ctx, "Save script: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Script with %d slides written to %s", len(script.Slides), dest)
}

func slugify(s string) string {
	slug := reSlug.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
