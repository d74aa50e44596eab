package router

import (
	"time"

	"github.com/Gritara234/BotPicsMex/core/logger"
	tg "github.com/Gritara234/BotPicsMex/core/telegram"
	"github.com/Gritara234/BotPicsMex/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes prepares one route per registered command, wrapped with
// the shared middleware and summary logging. Admin-only commands are
// silently dropped for other senders unless OnAdminReject is set.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		if def.AdminOnly {
			h = adminOnly(opts, h)
		}
		name := normalizeHandlerName(cmd)
		wrapped := func(c tele.Context) error {
			start := time.Now()
			return handleWithSummary(c, name, start, func() error {
				return h(c)
			})
		}
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(wrapped)),
		})
	}

	logger.TWire.Info("commands wired",
		slog.String("event", "wire.commands"),
		slog.Int("count", len(routes)),
	)

	return routes
}

func adminOnly(opts CommandRouteOptions, next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if opts.AdminID == 0 || sender == nil || sender.ID != opts.AdminID {
			if opts.OnAdminReject != nil {
				return opts.OnAdminReject(c)
			}
			return nil
		}
		return next(c)
	}
}
