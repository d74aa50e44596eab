// Package app assembles the bot: catalog, session store, transport
// adapter, navigation, intake flow, dispatchers and the handler registry.
package app

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/Gritara234/BotPicsMex/bot/catalog"
	"github.com/Gritara234/BotPicsMex/bot/intake"
	"github.com/Gritara234/BotPicsMex/bot/media"
	"github.com/Gritara234/BotPicsMex/bot/mailer"
	"github.com/Gritara234/BotPicsMex/bot/navigation"
	"github.com/Gritara234/BotPicsMex/bot/session"
	"github.com/Gritara234/BotPicsMex/bot/storage"
	"github.com/Gritara234/BotPicsMex/bot/transport"
	"github.com/Gritara234/BotPicsMex/core/bootstrap"
	"github.com/Gritara234/BotPicsMex/core/buildinfo"
	coreconfig "github.com/Gritara234/BotPicsMex/core/config"
	coretelegram "github.com/Gritara234/BotPicsMex/core/telegram"
	"github.com/Gritara234/BotPicsMex/core/telegram/commands"
	tghelpers "github.com/Gritara234/BotPicsMex/core/telegram/helpers"
	"github.com/Gritara234/BotPicsMex/core/telegram/router"

	"github.com/jmoiron/sqlx"
)

const fallbackReply = "Por favor, usa los botones del menú para interactuar conmigo."

// App is the fully wired bot.
type App struct {
	cfg      *coreconfig.Config
	db       *sqlx.DB
	adapter  *transport.Telebot
	registry *coretelegram.Registry
	flow     *intake.Flow
	started  time.Time
}

// New builds the application from configuration: logger and optional
// journal via bootstrap, then the conversation core and its registry.
func New(cfg *coreconfig.Config) (*App, error) {
	boot, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	adapter := transport.NewTelebot()
	store := session.NewStore()
	mediaMgr := media.NewManager(adapter, store, cat.SamplePhotos)
	nav := navigation.NewController(adapter, mediaMgr, cat)

	dispatchers := make([]intake.Dispatcher, 0, 2)
	ml, err := mailer.New(cfg.Mail)
	if err != nil {
		return nil, err
	}
	dispatchers = append(dispatchers, ml)
	if boot.DB != nil {
		dispatchers = append(dispatchers, storage.NewJournal(boot.DB))
	}

	flow := intake.NewFlow(adapter, store, cat.Services, dispatchers...)

	a := &App{
		cfg:      cfg,
		db:       boot.DB,
		adapter:  adapter,
		registry: coretelegram.NewRegistry(),
		flow:     flow,
		started:  time.Now(),
	}

	if err := a.wire(nav, mediaMgr); err != nil {
		return nil, err
	}
	return a, nil
}

// wire registers commands and checks that every menu token has a handler.
func (a *App) wire(nav *navigation.Controller, mediaMgr *media.Manager) error {
	handlers := nav.Handlers()
	handlers[navigation.TokenAppointment] = func(ctx context.Context, ev transport.Event) error {
		mediaMgr.ClearSamples(ctx, ev.ChatID)
		return a.flow.Begin(ctx, ev)
	}

	for _, tok := range navigation.AllTokens() {
		h, ok := handlers[tok]
		if !ok || h == nil {
			return fmt.Errorf("app: menu token %q has no handler", tok)
		}
		if err := a.registry.RegisterCallback(string(tok), a.asCallback(h)); err != nil {
			return err
		}
	}

	a.registry.RegisterCommand("/start", commands.Command{
		Handler:     a.asCallback(nav.ShowMainMenu),
		Description: "Abrir el menú principal",
	})
	a.registry.RegisterCommand("/status", commands.Command{
		Handler:     a.statusHandler,
		Description: "Estado del bot",
		AdminOnly:   true,
		Hidden:      true,
	})

	a.registry.SetTextFallback(func(c tele.Context) error {
		return c.Send(fallbackReply)
	})
	// Stale buttons from messages sent before a redeploy get the same
	// nudge as unknown text.
	a.registry.SetCallbackNotFound(func(c tele.Context) error {
		return c.Send(fallbackReply)
	})
	return nil
}

// asCallback adapts a menu handler to a Telebot handler, deriving the
// render target and logging context from the update.
func (a *App) asCallback(h navigation.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		return h(ctx, transport.EventFrom(c))
	}
}

func (a *App) statusHandler(c tele.Context) error {
	journal := "off"
	if a.db != nil {
		journal = "on"
	}
	return c.Send(fmt.Sprintf(
		"version: %s\ncommit: %s\nuptime: %s\njournal: %s",
		buildinfo.Version, buildinfo.Commit, time.Since(a.started).Round(time.Second), journal,
	))
}

// TelegramRunOptions exposes the run configuration for the core runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	conv := conversation{flow: a.flow}

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(conv, a.registry, router.TextOptions{})...)

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.adapter.Bind(rt.Bot)
			return nil
		},
	}, nil
}

// Close releases the journal handle when one was opened.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// conversation feeds free text into the intake flow while a stage is
// active.
type conversation struct {
	flow *intake.Flow
}

func (c conversation) InProgress(chatID int64) bool {
	return c.flow.InProgress(chatID)
}

func (c conversation) HandleText(tc tele.Context) error {
	chat := tc.Chat()
	if chat == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(tc)
	return c.flow.HandleText(ctx, chat.ID, tc.Text())
}
