// Package bot connects the registration conversation to Telegram.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/festbot/core/bootstrap"
	coredatabase "github.com/m3rciful/festbot/core/database"
	"github.com/m3rciful/festbot/core/logger"
	coretelegram "github.com/m3rciful/festbot/core/telegram"
	"github.com/m3rciful/festbot/core/telegram/commands"
	"github.com/m3rciful/festbot/core/telegram/queue"
	"github.com/m3rciful/festbot/core/telegram/router"
	"github.com/m3rciful/festbot/core/telegram/sender"
	"github.com/m3rciful/festbot/core/telegram/state"
	festconfig "github.com/m3rciful/festbot/festival/config"
	"github.com/m3rciful/festbot/festival/flow"
	"github.com/m3rciful/festbot/festival/registration"
	"github.com/m3rciful/festbot/festival/storage"
)

// App owns the running bot's components.
type App struct {
	cfg *festconfig.Config
	db  *sqlx.DB

	store     *storage.Store
	sessions  *state.MemoryManager
	queue     *queue.Keyed
	sender    *sender.Sender
	messenger *Messenger
	engine    *flow.Engine
	registry  *coretelegram.Registry

	closeOnce sync.Once
}

// New wires the app on an open, migrated database.
func New(cfg *festconfig.Config, db *sqlx.DB) (*App, error) {
	if cfg == nil {
		return nil, errors.New("bot: nil config")
	}
	a := &App{
		cfg:   cfg,
		db:    db,
		store: storage.New(db, cfg.Database),
		sessions: state.NewMemoryManager(state.MemoryOptions{
			TTL:           cfg.Flow.SessionTTL,
			SweepInterval: cfg.Flow.SweepInterval,
		}),
		queue: queue.New(queue.Options{MaxPending: cfg.Flow.QueueDepth}),
		sender: sender.New(sender.Options{
			Concurrency:  cfg.Sender.Concurrency,
			MaxRetries:   cfg.Sender.MaxRetries,
			RetryBackoff: cfg.Sender.RetryBackoff,
			MaxDuration:  cfg.Sender.MaxDuration,
		}),
		registry: coretelegram.NewRegistry(),
	}
	a.messenger = NewMessenger(a.sender)
	a.engine = flow.NewEngine(a.sessions, a.messenger, a.store, flow.Options{
		HintOnUnexpected: cfg.Flow.HintOnUnexpected,
	})
	if err := a.register(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Bootstrap initializes logging and storage from a loaded festbot config and
// returns the ready app.
func Bootstrap(ctx context.Context, cfg *festconfig.Config) (*App, error) {
	res, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
		Migrate: func(ctx context.Context, db *sqlx.DB, dbc coredatabase.Config) error {
			return storage.New(db, dbc).InitSchema(ctx)
		},
	})
	if err != nil {
		return nil, err
	}
	app, err := New(cfg, res.DB)
	if err != nil {
		_ = res.DB.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) register() error {
	if err := a.registry.RegisterCommand("/start", commands.Command{
		Handler:     a.onStart,
		Description: "Регистрация на фестиваль",
	}); err != nil {
		return err
	}

	for _, opt := range registration.Roles {
		if err := a.registry.RegisterCallback(opt.Value, a.onRole); err != nil {
			return fmt.Errorf("register role %s: %w", opt.Value, err)
		}
	}
	buttonSets := [][]registration.Option{
		registration.VisitDates,
		registration.AttendanceModes,
		registration.TeamSizes,
		registration.SpecialStatuses,
		registration.Accommodations,
	}
	for _, set := range buttonSets {
		for _, opt := range set {
			if err := a.registry.RegisterCallback(opt.Value, a.onButton); err != nil {
				return fmt.Errorf("register button %s: %w", opt.Value, err)
			}
		}
	}
	a.registry.SetTextFallback(a.onText)
	return nil
}

// TelegramRunOptions describes how the core runtime should run this bot.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	routes := router.CommandRoutes(a.registry)
	routes = append(routes, router.CallbackRoute(a.registry))
	routes = append(routes, router.TextRoutes(a.registry)...)

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.registry,
		Sender:      a.sender,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.messenger.Bind(rt.Bot)
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.Close()
			return nil
		},
	}, nil
}

// Close drains pending conversation steps, then releases sessions and the database.
func (a *App) Close() {
	a.closeOnce.Do(a.close)
}

func (a *App) close() {
	a.queue.Close()
	a.sessions.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.DB.Warn("db close failed",
				slog.String("event", "db.close"),
				slog.String("err", err.Error()),
			)
		}
	}
	logger.Component("app").Info("app closed",
		slog.String("event", "close"),
		slog.Int("sessions", a.sessions.Len()),
		slog.Uint64("send_errors", a.sender.ErrorCount()),
	)
}
