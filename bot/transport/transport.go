// Package transport defines the narrow outbound surface the conversation
// core calls, keeping the Telegram binding out of the domain packages.
package transport

import "context"

// Button is one inline-keyboard button. Data is the routing token carried
// back on the button press.
type Button struct {
	Label string
	Data  string
}

// Keyboard is rows of buttons. A nil keyboard means no markup.
type Keyboard [][]Button

// Event identifies the screen an inbound update came from. MessageID is
// zero when there is no on-screen message to edit (first /start or plain
// text), in which case renders send a new message instead.
type Event struct {
	ChatID    int64
	MessageID int
}

// Sender is the outbound messaging surface. Implementations must be safe
// for concurrent use.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, kb Keyboard) (int, error)
	EditText(ctx context.Context, chatID int64, messageID int, text string, kb Keyboard) error
	SendPhoto(ctx context.Context, chatID int64, ref string) (int, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}
