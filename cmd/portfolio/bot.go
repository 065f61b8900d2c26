package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"portfolio-chat/internal/adapter/telegram"
)

func newBotCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run only the Telegram bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}

			bot, err := telegram.NewBot(a.cfg, a.chat)
			if err != nil {
				return errors.Wrap(err, "init telegram bot")
			}
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return a.sweep(ctx)
			})
			g.Go(func() error {
				return bot.Run(ctx)
			})
			return g.Wait()
		},
	}
}
