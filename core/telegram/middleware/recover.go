package middleware

import (
	"runtime/debug"

	"github.com/Gritara234/BotPicsMex/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// RecoverMiddleware catches panics in handlers so a single update cannot
// crash the bot. When the update is a callback the user gets a generic
// failure reply; stored session state is left untouched either way.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
				if c.Callback() != nil {
					_ = c.Edit("Lo siento, ocurrió un error. Por favor, inténtalo de nuevo más tarde.")
				}
			}
		}()
		return next(c)
	}
}
