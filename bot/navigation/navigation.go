// Package navigation renders the two menu pages and the information
// panels, and maps menu-selection tokens to their handlers.
package navigation

import (
	"context"

	"github.com/Gritara234/BotPicsMex/bot/catalog"
	"github.com/Gritara234/BotPicsMex/bot/media"
	"github.com/Gritara234/BotPicsMex/bot/transport"
	"github.com/Gritara234/BotPicsMex/core/logger"
	"log/slog"
)

// Token is a menu-selection value carried in callback data. The set is
// closed; wiring checks that every token has a handler.
type Token string

const (
	TokenPrices         Token = "prices"
	TokenSamples        Token = "samples"
	TokenLocation       Token = "location"
	TokenFAQs           Token = "faqs"
	TokenAppointment    Token = "appointment"
	TokenNextPage       Token = "next_page"
	TokenPrevPage       Token = "prev_page"
	TokenReviews        Token = "reviews"
	TokenSocialMedia    Token = "social_media"
	TokenPaymentMethods Token = "payment_methods"
	TokenBackToMenu     Token = "back_to_menu"
)

// AllTokens enumerates every menu-selection token.
func AllTokens() []Token {
	return []Token{
		TokenPrices,
		TokenSamples,
		TokenLocation,
		TokenFAQs,
		TokenAppointment,
		TokenNextPage,
		TokenPrevPage,
		TokenReviews,
		TokenSocialMedia,
		TokenPaymentMethods,
		TokenBackToMenu,
	}
}

// HandlerFunc handles one menu selection.
type HandlerFunc func(ctx context.Context, ev transport.Event) error

// Controller renders menu screens. Every render first clears the session's
// sample photos so no orphaned media survives a navigation action.
type Controller struct {
	sender transport.Sender
	media  *media.Manager
	cat    *catalog.Catalog
}

// NewController builds the navigation controller.
func NewController(sender transport.Sender, mediaMgr *media.Manager, cat *catalog.Catalog) *Controller {
	return &Controller{sender: sender, media: mediaMgr, cat: cat}
}

// Handlers maps every navigation-owned token to its render. The
// appointment token belongs to the intake flow and is wired by the caller.
func (n *Controller) Handlers() map[Token]HandlerFunc {
	return map[Token]HandlerFunc{
		TokenPrices:         n.panel(pricesText),
		TokenSamples:        n.ShowSamples,
		TokenLocation:       n.panel(locationText),
		TokenFAQs:           n.panel(faqsText),
		TokenNextPage:       n.ShowSecondPage,
		TokenPrevPage:       n.ShowMainMenu,
		TokenReviews:        n.panel(reviewsText),
		TokenSocialMedia:    n.panel(socialText),
		TokenPaymentMethods: n.panel(paymentsText),
		TokenBackToMenu:     n.ShowMainMenu,
	}
}

// ShowMainMenu renders the first menu page.
func (n *Controller) ShowMainMenu(ctx context.Context, ev transport.Event) error {
	return n.render(ctx, ev, "main_menu", welcomeText, mainMenuKeyboard())
}

// ShowSecondPage renders the second menu page.
func (n *Controller) ShowSecondPage(ctx context.Context, ev transport.Event) error {
	return n.render(ctx, ev, "second_page", secondPageText, secondPageKeyboard())
}

// ShowSamples replaces the menu with the samples caption and sends three
// random sample photos underneath it.
func (n *Controller) ShowSamples(ctx context.Context, ev transport.Event) error {
	if err := n.render(ctx, ev, "samples", samplesText, backKeyboard()); err != nil {
		return err
	}
	return n.media.SendSamples(ctx, ev.ChatID)
}

// panel adapts a catalog-driven text builder into an info-panel render.
func (n *Controller) panel(build func(*catalog.Catalog) string) HandlerFunc {
	return func(ctx context.Context, ev transport.Event) error {
		return n.render(ctx, ev, "info_panel", build(n.cat), backKeyboard())
	}
}

// render clears on-screen media, then replaces the current screen: edit
// when the event carries a message, send otherwise. A failed send or edit
// aborts the render and leaves session state as it was.
func (n *Controller) render(ctx context.Context, ev transport.Event, screen, text string, kb transport.Keyboard) error {
	n.media.ClearSamples(ctx, ev.ChatID)

	body := withHeaderImage(n.cat.WelcomeImageURL, text)
	var err error
	if ev.MessageID != 0 {
		err = n.sender.EditText(ctx, ev.ChatID, ev.MessageID, body, kb)
	} else {
		_, err = n.sender.SendText(ctx, ev.ChatID, body, kb)
	}
	if err != nil {
		logger.Error(ctx, "nav", "render.fail",
			slog.String("mode", screen),
			slog.Int64("chat_id", ev.ChatID),
			slog.Int("message_id", ev.MessageID),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}
