package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"findata/internal/api"
	"findata/internal/config"
	"findata/internal/dataset"
	"findata/internal/query"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dataDir := flag.String("data", "", "dataset directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "server start failed:", err)
		os.Exit(1)
	}
	if strings.TrimSpace(*addr) != "" {
		cfg.Server.Addr = *addr
	}
	if strings.TrimSpace(*dataDir) != "" {
		cfg.Data.Dir = *dataDir
	}

	setupLogger(cfg.Log.Level)

	snap := dataset.Load(cfg.Data.Dir)
	engine := query.New(snap)
	server := api.New(cfg.Server.Addr, cfg.CORS.AllowedOrigins, engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server shut down")
}

func setupLogger(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
