package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"portfolio-chat/internal/adapter/memory"
	"portfolio-chat/internal/adapter/openai"
	"portfolio-chat/internal/config"
	"portfolio-chat/internal/logging"
	"portfolio-chat/internal/portfolio"
	"portfolio-chat/internal/usecase/chat"
)

const sweepInterval = time.Minute

type app struct {
	cfg  config.Config
	chat *chat.Service
}

// newApp loads configuration and the portfolio record and wires the chat
// service. quiet keeps log output off the terminal.
func newApp(opts *rootOptions, quiet bool) (*app, error) {
	if quiet {
		logging.Discard()
	}

	cfg, err := config.Load(opts.envPath, opts.configPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if !quiet {
		logging.Setup(cfg.LogLevel, os.Stderr)
	}

	record, err := portfolio.Load(cfg.PortfolioPath)
	if err != nil {
		return nil, errors.Wrap(err, "load portfolio")
	}

	if !cfg.HasAPIKey() {
		log.Warn().Str("env", config.APIKeyEnv).Msg("no API key set, answers will report the missing key")
	}

	client := openai.NewClient(cfg.APIKey, cfg.BaseURL)
	store := memory.NewStore()

	return &app{
		cfg:  cfg,
		chat: chat.NewService(store, client, record, cfg),
	}, nil
}

// sweep drops idle sessions until ctx is done. It never fails, so it can sit
// in an errgroup next to the front ends.
func (a *app) sweep(ctx context.Context) error {
	a.chat.RunSweeper(ctx, sweepInterval)
	return nil
}
