package services

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos"
	"github.com/troovstudio/troov-backend/internal/domain/account"
	"github.com/troovstudio/troov-backend/internal/observability"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/ctxutil"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/platform/sendgrid"
)

const supportEmailCategory = "support_ticket"

type SupportService interface {
	CreateTicket(dbc dbctx.Context, subject, message string) (uuid.UUID, error)
}

type supportService struct {
	log     *logger.Logger
	tickets repos.SupportTicketRepo
	mailer  sendgrid.Client
	inbox   string
}

// NewSupportService sends ticket emails only when both mailer and inbox are
// set.
func NewSupportService(log *logger.Logger, tickets repos.SupportTicketRepo, mailer sendgrid.Client, inbox string) SupportService {
	return &supportService{
		log:     log.With("service", "SupportService"),
		tickets: tickets,
		mailer:  mailer,
		inbox:   strings.TrimSpace(inbox),
	}
}

func (s *supportService) CreateTicket(dbc dbctx.Context, subject, message string) (uuid.UUID, error) {
	userID, err := requestUser(dbc.Ctx)
	if err != nil {
		return uuid.Nil, err
	}
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" || message == "" {
		return uuid.Nil, apierr.BadRequest("invalid_ticket", "Subject and message are required")
	}

	var email string
	if rd := ctxutil.GetRequestData(dbc.Ctx); rd != nil {
		email = rd.Email
	}
	ticket := &account.SupportTicket{
		UserID:  userID,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := s.tickets.Create(dbc, ticket); err != nil {
		s.log.Error("support ticket insert failed", "error", err)
		return uuid.Nil, apierr.Internal("ticket_failed", err)
	}

	if s.mailer != nil && s.inbox != "" {
		s.sendEmail(dbc.Ctx, ticket)
	}
	return ticket.ID, nil
}

func (s *supportService) sendEmail(ctx context.Context, t *account.SupportTicket) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	from := t.Email
	if from == "" {
		from = "unknown"
	}
	body := strings.Join([]string{
		"<p><strong>Ticket ID:</strong> " + t.ID.String() + "</p>",
		"<p><strong>From:</strong> " + html.EscapeString(from) + "</p>",
		"<p><strong>Subject:</strong> " + html.EscapeString(t.Subject) + "</p>",
		"<p><strong>Message:</strong></p>",
		`<pre style="white-space:pre-wrap;">` + html.EscapeString(t.Message) + "</pre>",
	}, "")
	msg := sendgrid.Message{
		To:         []sendgrid.Address{{Email: s.inbox}},
		Subject:    "[Support] " + t.Subject,
		HTML:       body,
		Categories: []string{supportEmailCategory},
	}
	if t.Email != "" {
		msg.ReplyTo = &sendgrid.Address{Email: t.Email}
	}
	_, err := s.mailer.Send(ctx, msg)
	observability.M().EmailSent(supportEmailCategory, err)
	if err != nil {
		s.log.Error("support email failed", "ticket_id", t.ID, "error", err)
	}
}
