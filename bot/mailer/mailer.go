// Package mailer delivers finalized appointment requests to the studio
// mailbox over authenticated SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/Gritara234/BotPicsMex/bot/session"
	coreconfig "github.com/Gritara234/BotPicsMex/core/config"
	"github.com/Gritara234/BotPicsMex/core/logger"
	"log/slog"
)

// Mailer submits appointment records by email. The studio mailbox is both
// sender and recipient.
type Mailer struct {
	client  *mail.Client
	address string
	host    string
}

// New builds the SMTP client from mail configuration.
func New(cfg coreconfig.MailConfig) (*Mailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Address),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("mailer: client init: %w", err)
	}
	return &Mailer{client: client, address: cfg.Address, host: cfg.Host}, nil
}

// Dispatch formats and submits one appointment record. The SMTP connection
// is opened per submission and closed on every exit path.
func (m *Mailer) Dispatch(ctx context.Context, rec session.Record) error {
	msg, err := buildMessage(m.address, rec)
	if err != nil {
		return fmt.Errorf("mailer: build message: %w", err)
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		logger.MAIL.LogAttrs(ctx, slog.LevelError, "submit failed",
			slog.String("event", "submit.fail"),
			slog.String("appointment_id", rec.ID),
			slog.String("host", m.host),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("mailer: submit: %w", err)
	}

	logger.MAIL.LogAttrs(ctx, slog.LevelInfo, "submitted",
		slog.String("event", "submit.ok"),
		slog.String("appointment_id", rec.ID),
	)
	return nil
}

func buildMessage(address string, rec session.Record) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(address); err != nil {
		return nil, err
	}
	if err := msg.To(address); err != nil {
		return nil, err
	}
	msg.Subject(subjectLine(rec))
	msg.SetBodyString(mail.TypeTextPlain, bodyText(rec))
	return msg, nil
}

func subjectLine(rec session.Record) string {
	return "Nueva solicitud de cita: " + rec.Name
}

func bodyText(rec session.Record) string {
	return fmt.Sprintf(
		"Se recibió una nueva solicitud de cita.\n\n"+
			"Referencia: %s\n"+
			"Nombre: %s\n"+
			"Teléfono: %s\n"+
			"Servicio: %s\n"+
			"Fecha: %s\n",
		rec.ID, rec.Name, rec.Phone, rec.Service, rec.Date,
	)
}
