// Package media manages the ephemeral sample photos: sent on demand,
// deleted on the next navigation action.
package media

import (
	"context"
	"errors"
	"math/rand"

	"github.com/Gritara234/BotPicsMex/bot/session"
	"github.com/Gritara234/BotPicsMex/bot/transport"
	"github.com/Gritara234/BotPicsMex/core/logger"
	"log/slog"
)

const sampleCount = 3

// ErrInsufficientCatalog is returned when the photo catalog cannot supply
// a full sample set.
var ErrInsufficientCatalog = errors.New("media: not enough sample photos in catalog")

// Manager sends and deletes sample photos, tracking their message IDs in
// the session store.
type Manager struct {
	sender   transport.Sender
	sessions *session.Store
	photos   []string
	perm     func(n int) []int
}

// NewManager builds a manager over the given photo catalog.
func NewManager(sender transport.Sender, sessions *session.Store, photos []string) *Manager {
	return &Manager{
		sender:   sender,
		sessions: sessions,
		photos:   photos,
		perm:     rand.Perm,
	}
}

// SendSamples clears any photos still on screen, then sends three distinct
// photos chosen uniformly without replacement, recording their message IDs.
func (m *Manager) SendSamples(ctx context.Context, chatID int64) error {
	if len(m.photos) < sampleCount {
		return ErrInsufficientCatalog
	}

	m.ClearSamples(ctx, chatID)

	order := m.perm(len(m.photos))
	sent := 0
	for _, idx := range order[:sampleCount] {
		ref := m.photos[idx]
		msgID, err := m.sender.SendPhoto(ctx, chatID, ref)
		if err != nil {
			logger.Warn(ctx, "media", "sample.send.fail",
				slog.Int64("chat_id", chatID),
				slog.String("photo_ref", logger.SanitizeLimit(ref, 128)),
				slog.String("err", err.Error()),
			)
			return err
		}
		m.sessions.RecordMedia(chatID, msgID)
		sent++
	}

	logger.Debug(ctx, "media", "sample.sent",
		slog.Int64("chat_id", chatID),
		slog.Int("count", sent),
	)
	return nil
}

// ClearSamples deletes every recorded photo message. Individual delete
// failures are logged and skipped; the recorded set is reset regardless,
// so the pass is idempotent. An empty set makes no transport calls.
func (m *Manager) ClearSamples(ctx context.Context, chatID int64) {
	ids := m.sessions.Media(chatID)
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		if err := m.sender.DeleteMessage(ctx, chatID, id); err != nil {
			logger.Warn(ctx, "media", "sample.delete.fail",
				slog.Int64("chat_id", chatID),
				slog.Int("message_id", id),
				slog.String("err", err.Error()),
			)
		}
	}
	m.sessions.ClearMedia(chatID)
}
