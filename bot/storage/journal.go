// Package storage keeps an optional Postgres journal of finalized
// appointment requests. Conversation state itself is never persisted.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Gritara234/BotPicsMex/bot/session"
	"github.com/Gritara234/BotPicsMex/core/logger"
	"log/slog"
)

const insertTimeout = 5 * time.Second

// execer is the slice of sqlx.DB the journal needs.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Journal records appointment requests as they are finalized. Inserts are
// best effort: a failure is logged by the caller and never blocks the
// conversation.
type Journal struct {
	db execer
}

// NewJournal wraps an open database handle.
func NewJournal(db *sqlx.DB) *Journal {
	return &Journal{db: db}
}

// Dispatch inserts one finalized record.
func (j *Journal) Dispatch(ctx context.Context, rec session.Record) error {
	ctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	const q = `
		INSERT INTO appointments (id, name, phone, service, date_text)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := j.db.ExecContext(ctx, q, rec.ID, rec.Name, rec.Phone, rec.Service, rec.Date); err != nil {
		return fmt.Errorf("journal: insert appointment %s: %w", rec.ID, err)
	}

	logger.Debug(ctx, "db", "journal.insert",
		slog.String("appointment_id", rec.ID),
	)
	return nil
}
