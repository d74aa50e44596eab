package transport

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/Gritara234/BotPicsMex/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Telebot adapts a tele.Bot to the Sender interface. The bot instance only
// exists once the runtime is built, so the adapter is created empty and
// bound in the run lifecycle's OnStart hook.
type Telebot struct {
	bot atomic.Pointer[tele.Bot]
}

// NewTelebot returns an unbound adapter.
func NewTelebot() *Telebot {
	return &Telebot{}
}

// Bind attaches the live bot instance.
func (t *Telebot) Bind(bot *tele.Bot) {
	t.bot.Store(bot)
}

func (t *Telebot) live() (*tele.Bot, error) {
	bot := t.bot.Load()
	if bot == nil {
		return nil, fmt.Errorf("transport: bot not bound")
	}
	return bot, nil
}

// SendText sends an HTML-formatted message with an optional inline keyboard.
func (t *Telebot) SendText(_ context.Context, chatID int64, text string, kb Keyboard) (int, error) {
	bot, err := t.live()
	if err != nil {
		return 0, err
	}
	msg, err := bot.Send(tele.ChatID(chatID), text, htmlOptions(kb))
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// EditText replaces the referenced message's text and keyboard.
func (t *Telebot) EditText(_ context.Context, chatID int64, messageID int, text string, kb Keyboard) error {
	bot, err := t.live()
	if err != nil {
		return err
	}
	ref := tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
	_, err = bot.Edit(ref, text, htmlOptions(kb))
	return err
}

// SendPhoto sends a photo by URL and returns the resulting message ID.
func (t *Telebot) SendPhoto(_ context.Context, chatID int64, ref string) (int, error) {
	bot, err := t.live()
	if err != nil {
		return 0, err
	}
	msg, err := bot.Send(tele.ChatID(chatID), &tele.Photo{File: tele.FromURL(ref)})
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// DeleteMessage removes a message from the chat.
func (t *Telebot) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	bot, err := t.live()
	if err != nil {
		return err
	}
	return bot.Delete(tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID})
}

func htmlOptions(kb Keyboard) *tele.SendOptions {
	return &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: Markup(kb)}
}

// Markup converts a domain keyboard to Telebot inline markup. Nil keyboards
// map to nil markup.
func Markup(kb Keyboard) *tele.ReplyMarkup {
	if kb == nil {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, len(kb))
	for i, row := range kb {
		r := make([]keyboard.InlineBtn, len(row))
		for j, b := range row {
			r[j] = keyboard.InlineBtn{Text: b.Label, Unique: b.Data}
		}
		rows[i] = r
	}
	return keyboard.InlineButtonsRows(rows...)
}

// EventFrom derives the render target from an inbound update: callbacks
// edit the message their button lives on, everything else sends fresh.
func EventFrom(c tele.Context) Event {
	ev := Event{}
	if chat := c.Chat(); chat != nil {
		ev.ChatID = chat.ID
	}
	if cb := c.Callback(); cb != nil && cb.Message != nil {
		ev.MessageID = cb.Message.ID
	}
	return ev
}
