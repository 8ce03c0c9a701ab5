package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/smartmoney/config"
	"github.com/alejandrodnm/smartmoney/internal/adapters/httpapi"
	"github.com/alejandrodnm/smartmoney/internal/adapters/notify"
	"github.com/alejandrodnm/smartmoney/internal/application/detector"
	"github.com/alejandrodnm/smartmoney/internal/domain/strategy"
	"github.com/alejandrodnm/smartmoney/internal/parser"
	"github.com/alejandrodnm/smartmoney/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	referencePath := flag.String("reference", "", "file with the reference book history (- for stdin)")
	marketPath := flag.String("market", "", "file with the comparison books (bookmaker / odds lines)")
	bankroll := flag.Float64("bankroll", 0, "bankroll (overrides config)")
	kelly := flag.Float64("kelly", 0, "fractional Kelly in (0, 1] (overrides config)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	history := flag.Bool("history", false, "print the reference price/risk history")
	details := flag.Bool("details", false, "print technical details of the analysis")
	jsonOut := flag.Bool("json", false, "print the report as JSON instead of tables")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot analysis")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *bankroll != 0 {
		cfg.Engine.Bankroll = *bankroll
	}
	if *kelly != 0 {
		cfg.Engine.KellyFraction = *kelly
	}
	setupLogger(cfg.Log)

	engineCfg := cfg.EngineDefaults()
	if err := engineCfg.Validate(); err != nil {
		slog.Error("invalid engine config", "err", err)
		os.Exit(1)
	}

	// En modo -serve la respuesta HTTP es la salida: sin notifier.
	var notifier ports.Notifier
	if !*serve {
		if *jsonOut {
			notifier = notify.NewJSON()
		} else {
			notifier = notify.NewConsole(*history, *details)
		}
	}

	det := detector.New(
		detector.Config{BatchWorkers: cfg.Engine.BatchWorkers},
		parser.NewReferenceParser(),
		parser.NewComparisonParser(cfg.Books.Reference, cfg.Books.Asian),
		notifier,
		strategy.NewSmartMoney(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *serve {
		runServer(ctx, cfg, det)
		return
	}

	slog.Debug("smartmoney starting",
		"config", *configPath,
		"reference", *referencePath,
		"market", *marketPath,
		"bankroll", engineCfg.Bankroll,
		"kelly_fraction", engineCfg.KellyFraction,
	)

	if *referencePath == "" {
		fmt.Fprintln(os.Stderr, "usage: detector -reference FILE [-market FILE] [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	in, err := readInput(*referencePath, *marketPath)
	if err != nil {
		slog.Error("failed to read input", "err", err)
		os.Exit(1)
	}
	in.Config = engineCfg

	if _, err := det.Run(ctx, in); err != nil {
		if errors.Is(err, detector.ErrNoReferenceData) {
			slog.Error("cannot recognize reference data (check the odds and date/time format)")
		} else {
			slog.Error("analysis failed", "err", err)
		}
		os.Exit(1)
	}
}

func runServer(ctx context.Context, cfg *config.Config, det *detector.Detector) {
	handler := httpapi.NewHandler(det, cfg.EngineDefaults(), httpapi.NewMetrics())
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RatePerSec:     cfg.Server.RatePerSec,
		Burst:          cfg.Server.Burst,
	})

	if err := httpapi.Serve(ctx, cfg.Server.Addr, router); err != nil {
		slog.Error("server exited with error", "err", err)
		os.Exit(1)
	}
	slog.Info("smartmoney stopped cleanly")
}

// readInput lee los dos bloques de texto. "-" como referencia lee de stdin;
// el archivo de mercado es opcional (sin él no hay targets).
func readInput(referencePath, marketPath string) (detector.Input, error) {
	var in detector.Input

	ref, err := readSource(referencePath)
	if err != nil {
		return in, fmt.Errorf("reference: %w", err)
	}
	in.ReferenceText = ref

	if marketPath != "" {
		mkt, err := readSource(marketPath)
		if err != nil {
			return in, fmt.Errorf("market: %w", err)
		}
		in.MarketText = mkt
	}
	return in, nil
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", path, err)
	}
	return string(data), nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
