package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Gritara234/BotPicsMex/bot/session"
)

type fakeExecer struct {
	query    string
	args     []interface{}
	deadline time.Time
	err      error
	calls    int
}

func (f *fakeExecer) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.calls++
	f.query = query
	f.args = args
	f.deadline, _ = ctx.Deadline()
	return nil, f.err
}

func testRecord() session.Record {
	return session.Record{
		ID:      "11111111-2222-3333-4444-555555555555",
		Name:    "Ana",
		Phone:   "555 123 4567",
		Service: "Sesión familiar",
		Date:    "12/10/2026",
	}
}

func TestJournalDispatchInsert(t *testing.T) {
	db := &fakeExecer{}
	j := &Journal{db: db}
	rec := testRecord()

	if err := j.Dispatch(context.Background(), rec); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if db.calls != 1 {
		t.Fatalf("calls = %d, want 1", db.calls)
	}
	if !strings.Contains(db.query, "INSERT INTO appointments") {
		t.Errorf("query = %q", db.query)
	}
	for _, col := range []string{"id", "name", "phone", "service", "date_text"} {
		if !strings.Contains(db.query, col) {
			t.Errorf("query %q misses column %s", db.query, col)
		}
	}
	want := []interface{}{rec.ID, rec.Name, rec.Phone, rec.Service, rec.Date}
	if len(db.args) != len(want) {
		t.Fatalf("args = %v", db.args)
	}
	for i := range want {
		if db.args[i] != want[i] {
			t.Errorf("arg[%d] = %v, want %v", i, db.args[i], want[i])
		}
	}
}

func TestJournalDispatchAppliesTimeout(t *testing.T) {
	db := &fakeExecer{}
	j := &Journal{db: db}

	before := time.Now()
	if err := j.Dispatch(context.Background(), testRecord()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if db.deadline.IsZero() {
		t.Fatal("insert context carries no deadline")
	}
	if remaining := db.deadline.Sub(before); remaining > insertTimeout+time.Second {
		t.Errorf("deadline %v past the insert timeout", remaining)
	}
}

func TestJournalDispatchWrapsError(t *testing.T) {
	sentinel := errors.New("connection refused")
	db := &fakeExecer{err: sentinel}
	j := &Journal{db: db}
	rec := testRecord()

	err := j.Dispatch(context.Background(), rec)
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped sentinel", err)
	}
	if !strings.Contains(err.Error(), rec.ID) {
		t.Errorf("err %q misses the appointment id", err)
	}
}
