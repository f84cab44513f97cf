// Package main is the entry point for ShardCrawler.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/samdwyer/shardcrawler/internal/devtools"
	"github.com/samdwyer/shardcrawler/internal/game"
	"github.com/samdwyer/shardcrawler/internal/gamedata"
	"github.com/samdwyer/shardcrawler/internal/logger"
	"github.com/samdwyer/shardcrawler/internal/storage"
	"github.com/samdwyer/shardcrawler/internal/telemetry"
	"github.com/samdwyer/shardcrawler/internal/world"
)

const defaultDumpWidth = 80

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type flags struct {
	seed       string
	difficulty string
	mode       string
	palette    string
	audio      bool
	shake      float64
	dump       bool
	storePath  string
	logFile    string
}

func parseFlags() (flags, map[string]bool) {
	var f flags
	flag.StringVar(&f.seed, "seed", "", "seed string (random when empty)")
	flag.StringVar(&f.difficulty, "difficulty", "", "relaxed, standard or hard")
	flag.StringVar(&f.mode, "mode", "", "turn or real")
	flag.StringVar(&f.palette, "palette", "", "color palette id")
	flag.BoolVar(&f.audio, "audio", false, "ring the terminal bell on cues")
	flag.Float64Var(&f.shake, "shake", 0, "screen shake intensity, 0 to disable")
	flag.BoolVar(&f.dump, "dump", false, "print the generated run and exit")
	flag.StringVar(&f.storePath, "store", "", "path of the JSON save file")
	flag.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set
}

func main() {
	// Load .env file for local development
	envErr := godotenv.Load()

	f, set := parseFlags()
	interactive := !f.dump && term.IsTerminal(int(os.Stdout.Fd()))

	closeLog := setupLogging(f.logFile, interactive)
	defer closeLog()
	log := logger.For("main")
	if envErr != nil {
		// Not fatal - env vars might be set directly
		log.WithError(envErr).Debug(".env file not loaded")
	}

	tracing := setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{Enabled: tracing, Version: version})
	if err != nil {
		log.WithError(err).Warn("telemetry setup failed, continuing without tracing")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.WithError(err).Warn("error shutting down telemetry")
			}
		}()
	}

	store := openStore(f.storePath, log)
	if store != nil {
		defer store.Close()
	}

	cfg, err := buildConfig(store, f, set)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if !interactive {
		if err := dump(ctx, cfg); err != nil {
			log.WithError(err).Error("dump failed")
			os.Exit(1)
		}
		return
	}

	g, err := game.New(cfg, store)
	if err != nil {
		log.WithError(err).Error("failed to initialize game")
		fmt.Fprintf(os.Stderr, "Failed to initialize game: %v\n", err)
		os.Exit(1)
	}
	if err := g.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("game error")
		fmt.Fprintf(os.Stderr, "Game error: %v\n", err)
		os.Exit(1)
	}
}

// buildConfig layers defaults, stored settings, environment and flags, each
// overriding the last.
func buildConfig(store storage.Store, f flags, set map[string]bool) (game.Config, error) {
	cfg := game.DefaultConfig()
	if store != nil {
		settings, err := store.LoadSettings(cfg.Settings())
		if err != nil {
			logger.For("main").WithError(err).Warn("failed to load settings")
		} else {
			cfg = game.ConfigFromSettings(cfg, settings)
		}
	}

	cfg, err := game.ConfigFromEnv(cfg)
	if err != nil {
		return cfg, err
	}

	if set["seed"] {
		cfg.Seed = f.seed
	}
	if set["difficulty"] {
		d, err := gamedata.ParseDifficulty(f.difficulty)
		if err != nil {
			return cfg, fmt.Errorf("-difficulty: %w", err)
		}
		cfg.Difficulty = d
	}
	if set["mode"] {
		m, err := game.ParseMode(f.mode)
		if err != nil {
			return cfg, fmt.Errorf("-mode: %w", err)
		}
		cfg.Mode = m
	}
	if set["palette"] {
		cfg.Palette = f.palette
	}
	if set["audio"] {
		cfg.Audio = f.audio
	}
	if set["shake"] {
		cfg.ScreenShake = max(0, f.shake)
	}
	return cfg, nil
}

// dump prints the run for cfg without starting the terminal UI.
func dump(ctx context.Context, cfg game.Config) error {
	gen, err := world.GenerateRun(ctx, cfg.Seed, cfg.Difficulty)
	if err != nil {
		return err
	}

	fd := int(os.Stdout.Fd())
	opts := devtools.DumpOptions{Width: defaultDumpWidth}
	if term.IsTerminal(fd) {
		opts.Color = true
		if width, _, err := term.GetSize(fd); err == nil {
			opts.Width = width
		}
	}
	return devtools.Dump(os.Stdout, gen, opts)
}

// openStore picks PostgreSQL when SHARDCRAWLER_DATABASE_URL is set and the
// JSON file otherwise. Failures disable persistence.
func openStore(path string, log *logrus.Entry) storage.Store {
	if dsn := os.Getenv("SHARDCRAWLER_DATABASE_URL"); dsn != "" {
		store, err := storage.NewPostgresStore(dsn)
		if err != nil {
			log.WithError(err).Warn("postgres store unavailable, persistence disabled")
			return nil
		}
		return store
	}

	if path == "" {
		path = os.Getenv("SHARDCRAWLER_STORE")
	}
	if path == "" {
		path = storage.DefaultPath()
	}
	store, err := storage.NewJSONStore(path)
	if err != nil {
		log.WithError(err).Warn("JSON store unavailable, persistence disabled")
		return nil
	}
	return store
}

// setupLogging points the logger at a file, stderr, or nowhere. The
// terminal UI owns stdout and stderr, so interactive runs without a log file
// discard output.
func setupLogging(path string, interactive bool) func() {
	if path == "" {
		path = os.Getenv("SHARDCRAWLER_LOG_FILE")
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case path != "":
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Note: log file not opened: %v\n", err)
			out = io.Discard
			break
		}
		out = file
		closeFn = func() { file.Close() }
	case interactive:
		out = io.Discard
	}

	logger.Init(logger.Options{Output: out})
	return closeFn
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is
// set and reports whether tracing should be enabled. An explicit
// OTEL_EXPORTER_OTLP_ENDPOINT also enables tracing.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_SHARDCRAWLER_API_KEY")
	if apiKey == "" {
		return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
	}

	dataset := os.Getenv("HONEYCOMB_SHARDCRAWLER_DATASET")
	if dataset == "" {
		dataset = "shardcrawler"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	// Built here because .env files often carry an unexpanded reference.
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
