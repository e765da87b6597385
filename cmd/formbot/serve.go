package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tbxark/docform/server"
	"github.com/tbxark/docform/telegram"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot with the health server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *configPath)
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.Telegram.Token == "" {
		return errors.New("telegram token is required (telegram.token or BOT_TOKEN)")
	}
	bot, err := telegram.New(telegram.Options{
		Token:       a.cfg.Telegram.Token,
		PollTimeout: a.cfg.Telegram.PollTimeout,
		Debug:       a.cfg.Telegram.Debug,
		Failure:     a.flow.Messages().Failure,
	}, a.flow, a.log)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(gctx)
	})
	if a.cfg.HTTP.Addr != "" {
		srv := server.New(a.log, a.cfg.HTTP.Addr, a.checks...)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}
	if a.cfg.Template.Watch {
		g.Go(func() error {
			return a.source.Watch(gctx, a.log)
		})
	}
	a.log.Info("formbot started")
	err = g.Wait()
	a.log.Info("formbot stopped", "error", err)
	return err
}
