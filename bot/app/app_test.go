package app

import (
	"context"
	"testing"
	"time"

	"github.com/Gritara234/BotPicsMex/bot/catalog"
	"github.com/Gritara234/BotPicsMex/bot/intake"
	"github.com/Gritara234/BotPicsMex/bot/media"
	"github.com/Gritara234/BotPicsMex/bot/navigation"
	"github.com/Gritara234/BotPicsMex/bot/session"
	"github.com/Gritara234/BotPicsMex/bot/transport"
	coretelegram "github.com/Gritara234/BotPicsMex/core/telegram"

	tele "gopkg.in/telebot.v4"
)

type fakeSender struct {
	nextID int
}

func (f *fakeSender) SendText(ctx context.Context, chatID int64, text string, kb transport.Keyboard) (int, error) {
	f.nextID++
	return f.nextID, nil
}

func (f *fakeSender) EditText(ctx context.Context, chatID int64, messageID int, text string, kb transport.Keyboard) error {
	return nil
}

func (f *fakeSender) SendPhoto(ctx context.Context, chatID int64, ref string) (int, error) {
	f.nextID++
	return f.nextID, nil
}

func (f *fakeSender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return nil
}

func wiredApp(t *testing.T) *App {
	t.Helper()
	cat := catalog.Default()
	sender := &fakeSender{}
	store := session.NewStore()
	mediaMgr := media.NewManager(sender, store, cat.SamplePhotos)
	nav := navigation.NewController(sender, mediaMgr, cat)

	a := &App{
		registry: coretelegram.NewRegistry(),
		flow:     intake.NewFlow(sender, store, cat.Services),
		started:  time.Now(),
	}
	if err := a.wire(nav, mediaMgr); err != nil {
		t.Fatalf("wire: %v", err)
	}
	return a
}

func TestWireCoversEveryMenuToken(t *testing.T) {
	a := wiredApp(t)
	for _, tok := range navigation.AllTokens() {
		if _, ok := a.registry.GetCallback(string(tok)); !ok {
			t.Errorf("token %q not registered as a callback", tok)
		}
	}
}

func TestWireRegistersStartCommand(t *testing.T) {
	a := wiredApp(t)
	if _, _, ok := a.registry.LookupCommand("/start"); !ok {
		t.Error("/start not registered")
	}
	// Plain "start" text must still open the menu.
	if _, _, ok := a.registry.LookupCommand("start"); !ok {
		t.Error("bare start lookup failed")
	}
}

func TestStatusCommandIsHiddenAdminOnly(t *testing.T) {
	a := wiredApp(t)
	_, cmd, ok := a.registry.LookupCommand("/status")
	if !ok {
		t.Fatal("/status not registered")
	}
	if !cmd.AdminOnly || !cmd.Hidden {
		t.Errorf("status command flags: admin=%v hidden=%v, want both true", cmd.AdminOnly, cmd.Hidden)
	}
	visible := a.registry.ListCommands(true)
	for _, v := range visible {
		if v.Text == "/status" {
			t.Error("/status exposed in the visible command list")
		}
	}
}

func TestWireSetsTextFallback(t *testing.T) {
	a := wiredApp(t)
	if a.registry.TextFallback() == nil {
		t.Error("text fallback not set")
	}
}

// sendRecorder overrides just Send; the embedded nil Context makes any
// other method call fail loudly.
type sendRecorder struct {
	tele.Context
	sent []string
}

func (r *sendRecorder) Send(what interface{}, opts ...interface{}) error {
	if s, ok := what.(string); ok {
		r.sent = append(r.sent, s)
	}
	return nil
}

func TestWireReplacesCallbackNotFound(t *testing.T) {
	a := wiredApp(t)
	h := a.registry.CallbackNotFound()
	if h == nil {
		t.Fatal("callback not-found fallback not set")
	}

	rec := &sendRecorder{}
	if err := h(rec); err != nil {
		t.Fatalf("not-found handler: %v", err)
	}
	if len(rec.sent) != 1 || rec.sent[0] != fallbackReply {
		t.Errorf("sent = %q, want the menu nudge", rec.sent)
	}
}
