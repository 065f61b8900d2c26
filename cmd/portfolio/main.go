package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			log.Info().Err(err).Msg("shutdown")
			return
		}
		log.Error().Err(err).Msg("portfolio stopped with error")
		os.Exit(1)
	}
}

type rootOptions struct {
	envPath    string
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio chat assistant",
		Long:          "Answers questions about a portfolio owner over the web, Telegram or the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envPath, "env", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "optional TOML config file")

	root.AddCommand(
		newServeCmd(opts),
		newBotCmd(opts),
		newChatCmd(opts),
	)
	return root
}
