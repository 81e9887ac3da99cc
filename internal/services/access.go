package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos"
	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/ctxutil"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/realtime"
)

// Publisher sends realtime messages to connected clients. The realtime bus
// implements it.
type Publisher interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, realtime.SSEMessage) error { return nil }

func orNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

func requestUser(ctx context.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized("not authenticated")
	}
	return rd.UserID, nil
}

// ownedProject loads the project and checks that the request user owns it.
// Projects of other users read as not found.
func ownedProject(dbc dbctx.Context, projects repos.ProjectRepo, projectID uuid.UUID) (*types.Project, error) {
	userID, err := requestUser(dbc.Ctx)
	if err != nil {
		return nil, err
	}
	p, err := projects.GetByID(dbc, projectID)
	if err != nil {
		return nil, apierr.FromStore("get project", err)
	}
	if p == nil || p.UserID != userID {
		return nil, apierr.NotFound("project")
	}
	return p, nil
}
