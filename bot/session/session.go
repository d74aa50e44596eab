// Package session holds per-chat conversational state: the set of sample
// photos currently on screen and the appointment intake progress. State is
// process-scoped and never persisted.
package session

import "sync"

// Stage is the position in the appointment intake form.
type Stage string

const (
	StageNone            Stage = "none"
	StageAwaitingName    Stage = "awaiting_name"
	StageAwaitingPhone   Stage = "awaiting_phone"
	StageAwaitingService Stage = "awaiting_service"
	StageAwaitingDate    Stage = "awaiting_date"
)

// Field names one slot of the intake record.
type Field string

const (
	FieldName    Field = "name"
	FieldPhone   Field = "phone"
	FieldService Field = "service"
	FieldDate    Field = "date"
)

// Record is the appointment request collected by the intake form. ID is
// assigned when the record is finalized.
type Record struct {
	ID      string
	Name    string
	Phone   string
	Service string
	Date    string
}

// Complete reports whether every intake field has been collected.
func (r Record) Complete() bool {
	return r.Name != "" && r.Phone != "" && r.Service != "" && r.Date != ""
}

// Session is one chat's state. Values returned by the store are snapshots;
// all mutation goes through Store methods.
type Session struct {
	ChatID   int64
	MediaIDs []int
	Stage    Stage
	Record   Record
}

// Store is a concurrency-safe map of sessions keyed by chat ID. Sessions
// are created lazily and never explicitly destroyed.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

func (s *Store) locked(chatID int64) *Session {
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &Session{ChatID: chatID, Stage: StageNone}
		s.sessions[chatID] = sess
	}
	return sess
}

// GetOrCreate returns a snapshot of the chat's session, creating it on
// first use.
func (s *Store) GetOrCreate(chatID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.locked(chatID)
	out := *sess
	out.MediaIDs = append([]int(nil), sess.MediaIDs...)
	return out
}

// Media returns the message IDs of sample photos currently on screen.
func (s *Store) Media(chatID int64) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.locked(chatID).MediaIDs...)
}

// RecordMedia appends sent photo message IDs to the chat's media set.
func (s *Store) RecordMedia(chatID int64, ids ...int) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.locked(chatID)
	sess.MediaIDs = append(sess.MediaIDs, ids...)
}

// ClearMedia unconditionally resets the chat's media set.
func (s *Store) ClearMedia(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked(chatID).MediaIDs = nil
}

// Stage returns the chat's current intake stage.
func (s *Store) Stage(chatID int64) Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked(chatID).Stage
}

// SetStage moves the chat to the given intake stage.
func (s *Store) SetStage(chatID int64, st Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked(chatID).Stage = st
}

// StartIntake discards any partial record and opens a fresh intake at the
// name stage.
func (s *Store) StartIntake(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.locked(chatID)
	sess.Record = Record{}
	sess.Stage = StageAwaitingName
}

// ResetIntake returns the chat to the idle stage and drops the record.
func (s *Store) ResetIntake(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.locked(chatID)
	sess.Record = Record{}
	sess.Stage = StageNone
}

// UpdateRecord stores one intake field and returns a snapshot of the
// record. The boolean reports whether the record is now complete.
func (s *Store) UpdateRecord(chatID int64, field Field, value string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.locked(chatID)
	switch field {
	case FieldName:
		sess.Record.Name = value
	case FieldPhone:
		sess.Record.Phone = value
	case FieldService:
		sess.Record.Service = value
	case FieldDate:
		sess.Record.Date = value
	}
	return sess.Record, sess.Record.Complete()
}
