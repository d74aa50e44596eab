package session

import (
	"sync"
	"testing"
)

func TestGetOrCreateLazily(t *testing.T) {
	s := NewStore()
	sess := s.GetOrCreate(42)
	if sess.ChatID != 42 {
		t.Errorf("chat id = %d, want 42", sess.ChatID)
	}
	if sess.Stage != StageNone {
		t.Errorf("new session stage = %q, want %q", sess.Stage, StageNone)
	}
	if len(sess.MediaIDs) != 0 {
		t.Errorf("new session media = %v, want empty", sess.MediaIDs)
	}
}

func TestMediaRecordAndClear(t *testing.T) {
	s := NewStore()
	s.RecordMedia(1, 10, 11)
	s.RecordMedia(1, 12)
	if got := s.Media(1); len(got) != 3 {
		t.Fatalf("media = %v, want 3 ids", got)
	}

	s.ClearMedia(1)
	if got := s.Media(1); len(got) != 0 {
		t.Errorf("after clear media = %v, want empty", got)
	}
	// Clearing an empty set is a no-op, not an error.
	s.ClearMedia(1)
}

func TestMediaSnapshotIsolation(t *testing.T) {
	s := NewStore()
	s.RecordMedia(5, 100)
	snap := s.Media(5)
	snap[0] = 999
	if got := s.Media(5)[0]; got != 100 {
		t.Errorf("stored media mutated through snapshot: %d", got)
	}
}

func TestUpdateRecordCompletion(t *testing.T) {
	s := NewStore()
	s.StartIntake(7)

	rec, done := s.UpdateRecord(7, FieldName, "Ana")
	if done {
		t.Fatal("record complete after one field")
	}
	if rec.Name != "Ana" {
		t.Errorf("name = %q, want Ana", rec.Name)
	}

	s.UpdateRecord(7, FieldPhone, "555-1234")
	s.UpdateRecord(7, FieldService, "Sesión familiar")
	rec, done = s.UpdateRecord(7, FieldDate, "20/12/2025")
	if !done {
		t.Fatal("record not complete after all four fields")
	}
	if rec.Service != "Sesión familiar" || rec.Date != "20/12/2025" {
		t.Errorf("record = %+v", rec)
	}
}

func TestStartIntakeResetsPartialRecord(t *testing.T) {
	s := NewStore()
	s.StartIntake(3)
	s.UpdateRecord(3, FieldName, "Juan")
	s.SetStage(3, StageAwaitingPhone)

	s.StartIntake(3)
	sess := s.GetOrCreate(3)
	if sess.Stage != StageAwaitingName {
		t.Errorf("stage = %q, want %q", sess.Stage, StageAwaitingName)
	}
	if sess.Record.Name != "" {
		t.Errorf("record.Name = %q, want empty after restart", sess.Record.Name)
	}
}

func TestResetIntake(t *testing.T) {
	s := NewStore()
	s.StartIntake(9)
	s.UpdateRecord(9, FieldName, "Luz")
	s.ResetIntake(9)

	sess := s.GetOrCreate(9)
	if sess.Stage != StageNone || sess.Record.Name != "" {
		t.Errorf("after reset stage=%q record=%+v", sess.Stage, sess.Record)
	}
}

func TestConcurrentSessionsAreIndependent(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.StartIntake(id)
			s.RecordMedia(id, int(id))
			s.UpdateRecord(id, FieldName, "n")
		}(int64(i))
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		sess := s.GetOrCreate(i)
		if sess.Stage != StageAwaitingName || len(sess.MediaIDs) != 1 {
			t.Fatalf("session %d corrupted: %+v", i, sess)
		}
	}
}
