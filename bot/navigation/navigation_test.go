package navigation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gritara234/BotPicsMex/bot/catalog"
	"github.com/Gritara234/BotPicsMex/bot/media"
	"github.com/Gritara234/BotPicsMex/bot/session"
	"github.com/Gritara234/BotPicsMex/bot/transport"
)

type call struct {
	kind string
	text string
	kb   transport.Keyboard
}

type fakeSender struct {
	nextID  int
	calls   []call
	deletes []int
	sendErr error
	editErr error
}

func (f *fakeSender) SendText(ctx context.Context, chatID int64, text string, kb transport.Keyboard) (int, error) {
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.nextID++
	f.calls = append(f.calls, call{kind: "send", text: text, kb: kb})
	return f.nextID, nil
}

func (f *fakeSender) EditText(ctx context.Context, chatID int64, messageID int, text string, kb transport.Keyboard) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.calls = append(f.calls, call{kind: "edit", text: text, kb: kb})
	return nil
}

func (f *fakeSender) SendPhoto(ctx context.Context, chatID int64, ref string) (int, error) {
	f.nextID++
	f.calls = append(f.calls, call{kind: "photo", text: ref})
	return f.nextID, nil
}

func (f *fakeSender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	f.deletes = append(f.deletes, messageID)
	return nil
}

func newController(sender *fakeSender) (*Controller, *session.Store) {
	cat := catalog.Default()
	store := session.NewStore()
	mgr := media.NewManager(sender, store, cat.SamplePhotos)
	return NewController(sender, mgr, cat), store
}

func TestMainMenuSendsOnFirstInteraction(t *testing.T) {
	sender := &fakeSender{}
	nav, _ := newController(sender)

	if err := nav.ShowMainMenu(context.Background(), transport.Event{ChatID: 1}); err != nil {
		t.Fatalf("ShowMainMenu: %v", err)
	}
	if len(sender.calls) != 1 || sender.calls[0].kind != "send" {
		t.Fatalf("calls = %+v, want one send", sender.calls)
	}
	got := sender.calls[0]
	if !strings.Contains(got.text, "¡Bienvenido a PicsMex Photography!") {
		t.Errorf("text = %q, missing welcome copy", got.text)
	}
	if !strings.Contains(got.text, "&#8205;") {
		t.Errorf("text = %q, missing invisible header-image link", got.text)
	}
	if len(got.kb) != 6 {
		t.Errorf("keyboard rows = %d, want 6", len(got.kb))
	}
}

func TestCallbackRenderEditsInPlace(t *testing.T) {
	sender := &fakeSender{}
	nav, _ := newController(sender)

	if err := nav.ShowSecondPage(context.Background(), transport.Event{ChatID: 1, MessageID: 55}); err != nil {
		t.Fatalf("ShowSecondPage: %v", err)
	}
	if len(sender.calls) != 1 || sender.calls[0].kind != "edit" {
		t.Fatalf("calls = %+v, want one edit", sender.calls)
	}
}

func TestRenderClearsMediaFirst(t *testing.T) {
	sender := &fakeSender{}
	nav, store := newController(sender)
	store.RecordMedia(1, 70, 71)

	if err := nav.ShowMainMenu(context.Background(), transport.Event{ChatID: 1, MessageID: 5}); err != nil {
		t.Fatalf("ShowMainMenu: %v", err)
	}
	if len(sender.deletes) != 2 {
		t.Errorf("deletes = %v, want both recorded photos removed", sender.deletes)
	}
	if got := store.Media(1); len(got) != 0 {
		t.Errorf("media = %v, want empty after menu render", got)
	}
}

func TestSamplesThenPricesDeletesAllThree(t *testing.T) {
	sender := &fakeSender{}
	nav, store := newController(sender)
	handlers := nav.Handlers()
	ev := transport.Event{ChatID: 1, MessageID: 9}

	if err := handlers[TokenSamples](context.Background(), ev); err != nil {
		t.Fatalf("samples: %v", err)
	}
	if got := store.Media(1); len(got) != 3 {
		t.Fatalf("media after samples = %v, want 3", got)
	}

	if err := handlers[TokenPrices](context.Background(), ev); err != nil {
		t.Fatalf("prices: %v", err)
	}
	if len(sender.deletes) != 3 {
		t.Errorf("deletes = %v, want exactly 3 before the prices panel", sender.deletes)
	}
	if got := store.Media(1); len(got) != 0 {
		t.Errorf("media after prices = %v, want empty", got)
	}
}

func TestHandlersCoverEveryNavigationToken(t *testing.T) {
	nav, _ := newController(&fakeSender{})
	handlers := nav.Handlers()
	for _, tok := range AllTokens() {
		if tok == TokenAppointment {
			continue
		}
		if handlers[tok] == nil {
			t.Errorf("token %q has no handler", tok)
		}
	}
}

func TestPanelTexts(t *testing.T) {
	cat := catalog.Default()
	cases := []struct {
		name  string
		build func(*catalog.Catalog) string
		wants []string
	}{
		{"prices", pricesText, []string{"Paquete Básico: $100", "Paquete Premium: $300"}},
		{"location", locationText, []string{"Calle Arty 226"}},
		{"faqs", faqsText, []string{"¿Viajan para sesiones de fotos?", "costo adicional"}},
		{"reviews", reviewsText, []string{"María G.", "Ana P."}},
		{"social", socialText, []string{"instagram.com/picsmex_photography", "@PicsMexPhoto"}},
		{"payments", paymentsText, []string{"• PayPal", "• Efectivo (solo para pagos en persona)"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := tc.build(cat)
			for _, want := range tc.wants {
				if !strings.Contains(text, want) {
					t.Errorf("%s text missing %q:\n%s", tc.name, want, text)
				}
			}
		})
	}
}

func TestRenderFailureAborts(t *testing.T) {
	sender := &fakeSender{editErr: errors.New("message is not modified")}
	nav, _ := newController(sender)
	handlers := nav.Handlers()

	err := handlers[TokenSamples](context.Background(), transport.Event{ChatID: 1, MessageID: 3})
	if err == nil {
		t.Fatal("expected render error to propagate")
	}
	for _, c := range sender.calls {
		if c.kind == "photo" {
			t.Error("photos sent after a failed caption render")
		}
	}
}
