// Package app is the composition root: it wires config, the scribe
// client, the status poller, the websocket log pump and the TUI.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ragdeck/ragdeck/internal/config"
	"github.com/ragdeck/ragdeck/internal/dispatch"
	"github.com/ragdeck/ragdeck/internal/form"
	"github.com/ragdeck/ragdeck/internal/logging"
	"github.com/ragdeck/ragdeck/internal/logstream"
	"github.com/ragdeck/ragdeck/internal/logtail"
	"github.com/ragdeck/ragdeck/internal/notify"
	"github.com/ragdeck/ragdeck/internal/prefs"
	"github.com/ragdeck/ragdeck/internal/scribe"
	"github.com/ragdeck/ragdeck/internal/state"
	"github.com/ragdeck/ragdeck/internal/ui"
)

// Options configure the ragdeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/ragdeck/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
}

// Run boots the ragdeck TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	logger, err := logging.New(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := scribe.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init scribe client: %w", err)
	}

	fields, err := form.New(ui.DefaultFields()...)
	if err != nil {
		return fmt.Errorf("build config form: %w", err)
	}

	store := &state.Store{}
	dispatcher := dispatch.New(client)
	tail := logtail.New()
	notes := notify.NewCenter()

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	StartPoller(ctx, store, client, interval, logger)

	wsURL := cfg.LogStream
	if wsURL == "" {
		wsURL = client.WSLogsURL()
	}
	stream := logstream.New(wsURL, logger)
	go stream.Run(ctx)

	model := ui.New(ui.Options{
		Context:    ctx,
		API:        client,
		Store:      store,
		Dispatcher: dispatcher,
		Tail:       tail,
		Notes:      notes,
		Config:     &cfg,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
		Form:       fields,
		PollTick:   time.Second,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Forward websocket events into the update loop. The channel is
	// closed when the stream's context ends.
	go func() {
		for ev := range stream.Events() {
			program.Send(ui.StreamEvent(ev))
		}
	}()

	logger.Info("ragdeck starting",
		zap.String("api_bind", cfg.APIBind),
		zap.String("log_stream", wsURL))

	_, err = program.Run()
	return err
}
