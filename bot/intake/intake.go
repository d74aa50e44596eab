// Package intake implements the appointment form: a strict linear flow
// collecting name, phone, service and date, dispatched on completion.
package intake

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Gritara234/BotPicsMex/bot/session"
	"github.com/Gritara234/BotPicsMex/bot/transport"
	"github.com/Gritara234/BotPicsMex/core/logger"
	"log/slog"
)

const (
	promptName  = "¡Perfecto! Vamos a agendar tu cita.\n\nPor favor, escribe tu nombre:"
	promptPhone = "Gracias. Ahora escribe tu número de teléfono:"
	promptDate  = "¿Para qué fecha te gustaría la cita? Escríbela en formato DD/MM/AAAA:"
	replyDone   = "¡Tu cita fue solicitada con éxito! Nos pondremos en contacto contigo pronto."
)

// Dispatcher receives the finalized appointment record. Implementations
// must not surface delivery failures to the conversation.
type Dispatcher interface {
	Dispatch(ctx context.Context, rec session.Record) error
}

// Flow drives the intake form for every chat. Completion hands the record
// to each dispatcher in order; a dispatcher failure is logged and the user
// still receives the success reply.
type Flow struct {
	sender      transport.Sender
	sessions    *session.Store
	services    []string
	dispatchers []Dispatcher
	newID       func() string
}

// NewFlow builds the intake flow over the fixed service catalog.
func NewFlow(sender transport.Sender, sessions *session.Store, services []string, dispatchers ...Dispatcher) *Flow {
	return &Flow{
		sender:      sender,
		sessions:    sessions,
		services:    services,
		dispatchers: dispatchers,
		newID:       uuid.NewString,
	}
}

// InProgress reports whether the chat has an active intake.
func (f *Flow) InProgress(chatID int64) bool {
	return f.sessions.Stage(chatID) != session.StageNone
}

// Begin handles the appointment menu selection. A fresh intake opens at
// the name stage; selecting it again mid-flow re-prompts the current stage
// instead of restarting.
func (f *Flow) Begin(ctx context.Context, ev transport.Event) error {
	stage := f.sessions.Stage(ev.ChatID)
	if stage != session.StageNone {
		logger.Debug(ctx, "intake", "begin.reprompt",
			slog.Int64("chat_id", ev.ChatID),
			slog.String("stage", string(stage)),
		)
		return f.prompt(ctx, ev.ChatID, stage)
	}

	f.sessions.StartIntake(ev.ChatID)
	logger.Info(ctx, "intake", "begin",
		slog.Int64("chat_id", ev.ChatID),
	)

	body := promptName
	if ev.MessageID != 0 {
		return f.sender.EditText(ctx, ev.ChatID, ev.MessageID, body, nil)
	}
	_, err := f.sender.SendText(ctx, ev.ChatID, body, nil)
	return err
}

// HandleText consumes one free-text message as the field for the chat's
// current stage.
func (f *Flow) HandleText(ctx context.Context, chatID int64, text string) error {
	text = strings.TrimSpace(text)
	stage := f.sessions.Stage(chatID)

	if text == "" {
		return f.prompt(ctx, chatID, stage)
	}

	switch stage {
	case session.StageAwaitingName:
		f.sessions.UpdateRecord(chatID, session.FieldName, text)
		f.sessions.SetStage(chatID, session.StageAwaitingPhone)
		return f.send(ctx, chatID, promptPhone)

	case session.StageAwaitingPhone:
		f.sessions.UpdateRecord(chatID, session.FieldPhone, text)
		f.sessions.SetStage(chatID, session.StageAwaitingService)
		return f.send(ctx, chatID, f.serviceList())

	case session.StageAwaitingService:
		idx, err := strconv.Atoi(text)
		if err != nil || idx < 1 || idx > len(f.services) {
			logger.Debug(ctx, "intake", "service.invalid",
				slog.Int64("chat_id", chatID),
				slog.String("payload", logger.SanitizeLimit(text, 32)),
			)
			return f.send(ctx, chatID, f.invalidService())
		}
		f.sessions.UpdateRecord(chatID, session.FieldService, f.services[idx-1])
		f.sessions.SetStage(chatID, session.StageAwaitingDate)
		return f.send(ctx, chatID, promptDate)

	case session.StageAwaitingDate:
		rec, _ := f.sessions.UpdateRecord(chatID, session.FieldDate, text)
		rec.ID = f.newID()
		f.dispatch(ctx, chatID, rec)
		f.sessions.ResetIntake(chatID)
		return f.send(ctx, chatID, replyDone)
	}

	return nil
}

// dispatch hands the finalized record to every dispatcher. An appointment
// counts as requested once captured; delivery is best effort.
func (f *Flow) dispatch(ctx context.Context, chatID int64, rec session.Record) {
	for _, d := range f.dispatchers {
		if err := d.Dispatch(ctx, rec); err != nil {
			logger.Error(ctx, "intake", "dispatch.fail",
				slog.Int64("chat_id", chatID),
				slog.String("appointment_id", rec.ID),
				slog.String("err", err.Error()),
			)
			continue
		}
	}
	logger.Info(ctx, "intake", "complete",
		slog.Int64("chat_id", chatID),
		slog.String("appointment_id", rec.ID),
		slog.String("token", logger.SanitizeLimit(rec.Service, 64)),
	)
}

func (f *Flow) prompt(ctx context.Context, chatID int64, stage session.Stage) error {
	switch stage {
	case session.StageAwaitingName:
		return f.send(ctx, chatID, promptName)
	case session.StageAwaitingPhone:
		return f.send(ctx, chatID, promptPhone)
	case session.StageAwaitingService:
		return f.send(ctx, chatID, f.serviceList())
	case session.StageAwaitingDate:
		return f.send(ctx, chatID, promptDate)
	}
	return nil
}

func (f *Flow) send(ctx context.Context, chatID int64, text string) error {
	_, err := f.sender.SendText(ctx, chatID, text, nil)
	return err
}

func (f *Flow) serviceList() string {
	var b strings.Builder
	b.WriteString("Elige el tipo de sesión respondiendo con el número:\n\n")
	for i, s := range f.services {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (f *Flow) invalidService() string {
	return fmt.Sprintf("Opción no válida. Por favor, responde con un número entre 1 y %d.", len(f.services))
}
