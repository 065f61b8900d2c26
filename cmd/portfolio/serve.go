package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"portfolio-chat/internal/adapter/telegram"
	"portfolio-chat/internal/adapter/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var withTelegram bool
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio page and chat API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			if addr != "" {
				a.cfg.HTTPAddr = addr
			}

			srv, err := web.NewServer(a.chat, a.cfg)
			if err != nil {
				return errors.Wrap(err, "init web server")
			}

			var bot *telegram.Bot
			if withTelegram {
				bot, err = telegram.NewBot(a.cfg, a.chat)
				if err != nil {
					return errors.Wrap(err, "init telegram bot")
				}
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return a.sweep(ctx)
			})
			g.Go(func() error {
				return srv.Run(ctx)
			})
			if bot != nil {
				g.Go(func() error {
					return bot.Run(ctx)
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&withTelegram, "telegram", false, "also run the Telegram bot")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}
