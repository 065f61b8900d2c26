package main

import (
	"github.com/spf13/cobra"

	"portfolio-chat/internal/adapter/tui"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, true)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), a.chat, a.cfg.ResumePath)
		},
	}
}
