package router

import (
	"time"

	tg "github.com/Gritara234/BotPicsMex/core/telegram"
	"github.com/Gritara234/BotPicsMex/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Conversation is the minimal interface for a stateful conversation flow
// consuming free-text messages.
type Conversation interface {
	InProgress(chatID int64) bool
	HandleText(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the handler for incoming text. An active conversation
// takes priority; otherwise the text is matched against registered commands
// (with or without slash), then falls through to the registry fallback.
func TextRoutes(conv Conversation, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if conv != nil && c.Chat() != nil && conv.InProgress(c.Chat().ID) {
			return handleWithSummary(c, "conversation", start, func() error {
				return conv.HandleText(c)
			})
		}

		if key, h, ok := lookupOpenCommand(reg, text); ok {
			return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
				return h(c)
			})
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}

// lookupOpenCommand matches bare text against registered commands. Only
// public commands qualify: admin-only and hidden commands stay reachable
// through their slash endpoint alone, where the admin gate applies.
func lookupOpenCommand(reg *tg.Registry, text string) (string, tele.HandlerFunc, bool) {
	if reg == nil {
		return "", nil, false
	}
	key, cmd, ok := reg.LookupCommand(text)
	if !ok || cmd.Handler == nil || cmd.AdminOnly || cmd.Hidden {
		return "", nil, false
	}
	return key, cmd.Handler, true
}
