package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos"
	types "github.com/troovstudio/troov-backend/internal/domain/notify"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/realtime"
)

const notificationListLimit = 20

type NotificationService interface {
	List(dbc dbctx.Context) ([]*types.Notification, error)
	MarkRead(dbc dbctx.Context, id uuid.UUID) error
	MarkAllRead(dbc dbctx.Context) (int64, error)
	ClearRead(dbc dbctx.Context) (int64, error)
	// Notify stores a notification for its user and pushes it to their
	// open streams.
	Notify(dbc dbctx.Context, n *types.Notification) error
}

type notificationService struct {
	log           *logger.Logger
	notifications repos.NotificationRepo
	publisher     Publisher
	now           func() time.Time
}

func NewNotificationService(log *logger.Logger, notifications repos.NotificationRepo, publisher Publisher) NotificationService {
	return &notificationService{
		log:           log.With("service", "NotificationService"),
		notifications: notifications,
		publisher:     orNop(publisher),
		now:           time.Now,
	}
}

func (s *notificationService) List(dbc dbctx.Context) ([]*types.Notification, error) {
	userID, err := requestUser(dbc.Ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.notifications.ListLatest(dbc, userID, notificationListLimit)
	if err != nil {
		return nil, apierr.FromStore("list notifications", err)
	}
	if out == nil {
		out = []*types.Notification{}
	}
	return out, nil
}

func (s *notificationService) MarkRead(dbc dbctx.Context, id uuid.UUID) error {
	userID, err := requestUser(dbc.Ctx)
	if err != nil {
		return err
	}
	ok, err := s.notifications.MarkRead(dbc, userID, id, s.now().UTC())
	if err != nil {
		return apierr.FromStore("mark notification read", err)
	}
	if !ok {
		return apierr.NotFound("notification")
	}
	return nil
}

func (s *notificationService) MarkAllRead(dbc dbctx.Context) (int64, error) {
	userID, err := requestUser(dbc.Ctx)
	if err != nil {
		return 0, err
	}
	n, err := s.notifications.MarkAllRead(dbc, userID, s.now().UTC())
	if err != nil {
		return 0, apierr.FromStore("mark notifications read", err)
	}
	return n, nil
}

func (s *notificationService) ClearRead(dbc dbctx.Context) (int64, error) {
	userID, err := requestUser(dbc.Ctx)
	if err != nil {
		return 0, err
	}
	n, err := s.notifications.ClearRead(dbc, userID)
	if err != nil {
		return 0, apierr.FromStore("clear read notifications", err)
	}
	return n, nil
}

func (s *notificationService) Notify(dbc dbctx.Context, n *types.Notification) error {
	if err := s.notifications.Create(dbc, n); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(dbc.Ctx), 5*time.Second)
	defer cancel()
	err := s.publisher.Publish(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(n.UserID),
		Event:   realtime.SSEEventNotificationCreated,
		Data:    n,
	})
	if err != nil {
		s.log.Warn("publish notification failed", "notification_id", n.ID, "error", err)
	}
	return nil
}
