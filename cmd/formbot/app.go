package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tbxark/docform/config"
	"github.com/tbxark/docform/docx"
	"github.com/tbxark/docform/form"
	"github.com/tbxark/docform/logger"
	"github.com/tbxark/docform/render"
	"github.com/tbxark/docform/schema"
	"github.com/tbxark/docform/server"
	"github.com/tbxark/docform/session"
)

// app holds the components shared by the serve and console commands.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	schema  *schema.Schema
	source  *docx.Source
	flow    *session.Flow
	checks  []server.Check
	closers []func() error
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	sch, err := cfg.Schema()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	a := &app{
		cfg:    cfg,
		log:    log,
		schema: sch,
		source: docx.NewSource(cfg.Template.Path),
		checks: []server.Check{
			server.FileCheck("template", cfg.Template.Path),
			server.DirCheck("output", cfg.Output.Dir),
		},
	}
	states, err := a.stateStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	parser := cfg.CommandParser()
	a.flow, err = session.NewFlow(session.Config{
		Machine:   form.NewMachine(sch, parser),
		Parser:    parser,
		States:    states,
		Engine:    render.NewEngine(a.source),
		Namer:     cfg.Namer(),
		OutputDir: cfg.Output.Dir,
		Messages:  cfg.Messages(),
		Logger:    log,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Info("form loaded", "fields", sch.Len(), "template", cfg.Template.Path, "store", cfg.Store.Driver)
	return a, nil
}

func (a *app) stateStore(ctx context.Context) (session.StateReadWriter, error) {
	if a.cfg.Store.Driver != config.StoreRedis {
		return session.NewMemorySessionStore(a.schema), nil
	}
	r := a.cfg.Store.Redis
	backend, err := session.NewRedisBackend(ctx, session.RedisOptions{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
		TTL:      r.TTL,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, backend.Close)
	a.checks = append(a.checks, server.Check{Name: "redis", Fn: backend.Ping})
	return session.NewSessionStore(backend, a.schema), nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn("close", "error", err)
		}
	}
	a.log.Sync()
}
