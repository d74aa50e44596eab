package intake

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gritara234/BotPicsMex/bot/session"
	"github.com/Gritara234/BotPicsMex/bot/transport"
)

type fakeSender struct {
	nextID int
	texts  []string
	edits  []string
}

func (f *fakeSender) SendText(ctx context.Context, chatID int64, text string, kb transport.Keyboard) (int, error) {
	f.nextID++
	f.texts = append(f.texts, text)
	return f.nextID, nil
}

func (f *fakeSender) EditText(ctx context.Context, chatID int64, messageID int, text string, kb transport.Keyboard) error {
	f.edits = append(f.edits, text)
	return nil
}

func (f *fakeSender) SendPhoto(ctx context.Context, chatID int64, ref string) (int, error) {
	f.nextID++
	return f.nextID, nil
}

func (f *fakeSender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return nil
}

type fakeDispatcher struct {
	records []session.Record
	err     error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, rec session.Record) error {
	f.records = append(f.records, rec)
	return f.err
}

var services = []string{"Sesión de retrato", "Sesión familiar", "Sesión de eventos", "Sesión de producto"}

func newFlow(disp ...Dispatcher) (*Flow, *fakeSender, *session.Store) {
	sender := &fakeSender{}
	store := session.NewStore()
	f := NewFlow(sender, store, services, disp...)
	f.newID = func() string { return "ref-1" }
	return f, sender, store
}

func lastText(t *testing.T, sender *fakeSender) string {
	t.Helper()
	if len(sender.texts) == 0 {
		t.Fatal("no text sent")
	}
	return sender.texts[len(sender.texts)-1]
}

func TestBeginOpensAtNameStage(t *testing.T) {
	f, sender, store := newFlow()
	ctx := context.Background()

	if err := f.Begin(ctx, transport.Event{ChatID: 1, MessageID: 8}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if got := store.Stage(1); got != session.StageAwaitingName {
		t.Errorf("stage = %q, want %q", got, session.StageAwaitingName)
	}
	if len(sender.edits) != 1 || !strings.Contains(sender.edits[0], "escribe tu nombre") {
		t.Errorf("edits = %v, want in-place name prompt", sender.edits)
	}
}

func TestBeginDuringActiveIntakeReprompts(t *testing.T) {
	f, sender, store := newFlow()
	ctx := context.Background()

	f.Begin(ctx, transport.Event{ChatID: 1})
	f.HandleText(ctx, 1, "Ana")
	f.HandleText(ctx, 1, "555-1234")

	if err := f.Begin(ctx, transport.Event{ChatID: 1, MessageID: 9}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if got := store.Stage(1); got != session.StageAwaitingService {
		t.Errorf("stage = %q, want unchanged %q", got, session.StageAwaitingService)
	}
	if rec := store.GetOrCreate(1).Record; rec.Name != "Ana" {
		t.Errorf("record reset by mid-flow selection: %+v", rec)
	}
	if !strings.Contains(lastText(t, sender), "1. Sesión de retrato") {
		t.Errorf("reprompt = %q, want the service list again", lastText(t, sender))
	}
}

func TestStageOrderNoSkips(t *testing.T) {
	f, _, store := newFlow()
	ctx := context.Background()

	want := []session.Stage{
		session.StageAwaitingName,
		session.StageAwaitingPhone,
		session.StageAwaitingService,
		session.StageAwaitingDate,
		session.StageNone,
	}
	inputs := []string{"Ana", "555-1234", "2", "20/12/2025"}

	f.Begin(ctx, transport.Event{ChatID: 1})
	got := []session.Stage{store.Stage(1)}
	for _, in := range inputs {
		if err := f.HandleText(ctx, 1, in); err != nil {
			t.Fatalf("HandleText(%q): %v", in, err)
		}
		got = append(got, store.Stage(1))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stage sequence = %v, want %v", got, want)
		}
	}
}

func TestServiceIndexValidation(t *testing.T) {
	cases := []struct {
		input   string
		advance bool
	}{
		{"0", false},
		{"5", false},
		{"abc", false},
		{"2", true},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			f, sender, store := newFlow()
			ctx := context.Background()
			f.Begin(ctx, transport.Event{ChatID: 1})
			f.HandleText(ctx, 1, "Ana")
			f.HandleText(ctx, 1, "555-1234")

			if err := f.HandleText(ctx, 1, tc.input); err != nil {
				t.Fatalf("HandleText: %v", err)
			}
			rec := store.GetOrCreate(1).Record
			if tc.advance {
				if store.Stage(1) != session.StageAwaitingDate {
					t.Errorf("stage = %q, want awaiting_date", store.Stage(1))
				}
				if rec.Service != "Sesión familiar" {
					t.Errorf("service = %q, want catalog entry 2", rec.Service)
				}
			} else {
				if store.Stage(1) != session.StageAwaitingService {
					t.Errorf("stage = %q, want unchanged awaiting_service", store.Stage(1))
				}
				if rec.Service != "" {
					t.Errorf("service = %q, want untouched", rec.Service)
				}
				if !strings.Contains(lastText(t, sender), "entre 1 y 4") {
					t.Errorf("reply = %q, want reprompt", lastText(t, sender))
				}
			}
		})
	}
}

func TestCompletionDispatchesOnceAndResets(t *testing.T) {
	disp := &fakeDispatcher{}
	f, sender, store := newFlow(disp)
	ctx := context.Background()

	f.Begin(ctx, transport.Event{ChatID: 1})
	f.HandleText(ctx, 1, "Ana")
	f.HandleText(ctx, 1, "555-1234")
	f.HandleText(ctx, 1, "2")
	if err := f.HandleText(ctx, 1, "20/12/2025"); err != nil {
		t.Fatalf("HandleText: %v", err)
	}

	if len(disp.records) != 1 {
		t.Fatalf("dispatched %d times, want exactly once", len(disp.records))
	}
	rec := disp.records[0]
	if rec.ID != "ref-1" || rec.Name != "Ana" || rec.Phone != "555-1234" ||
		rec.Service != "Sesión familiar" || rec.Date != "20/12/2025" {
		t.Errorf("dispatched record = %+v", rec)
	}
	if !strings.Contains(lastText(t, sender), "solicitada con éxito") {
		t.Errorf("reply = %q, want success message", lastText(t, sender))
	}
	if store.Stage(1) != session.StageNone {
		t.Errorf("stage = %q, want reset to none", store.Stage(1))
	}
	if got := store.GetOrCreate(1).Record; got.Name != "" {
		t.Errorf("record = %+v, want cleared after completion", got)
	}
}

func TestDispatchFailureStillSucceedsForUser(t *testing.T) {
	failing := &fakeDispatcher{err: errors.New("smtp: 535 authentication failed")}
	second := &fakeDispatcher{}
	f, sender, store := newFlow(failing, second)
	ctx := context.Background()

	f.Begin(ctx, transport.Event{ChatID: 1})
	f.HandleText(ctx, 1, "Ana")
	f.HandleText(ctx, 1, "555-1234")
	f.HandleText(ctx, 1, "1")
	if err := f.HandleText(ctx, 1, "01/01/2026"); err != nil {
		t.Fatalf("HandleText: %v", err)
	}

	if !strings.Contains(lastText(t, sender), "solicitada con éxito") {
		t.Errorf("reply = %q, want unconditional success", lastText(t, sender))
	}
	if len(second.records) != 1 {
		t.Errorf("second dispatcher called %d times, want 1 despite first failing", len(second.records))
	}
	if store.Stage(1) != session.StageNone {
		t.Errorf("stage = %q, want none", store.Stage(1))
	}
}

func TestInProgress(t *testing.T) {
	f, _, _ := newFlow()
	if f.InProgress(1) {
		t.Error("fresh chat reported in progress")
	}
	f.Begin(context.Background(), transport.Event{ChatID: 1})
	if !f.InProgress(1) {
		t.Error("active intake not reported in progress")
	}
}
