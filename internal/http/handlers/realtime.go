package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/troovstudio/troov-backend/internal/http/response"
	"github.com/troovstudio/troov-backend/internal/platform/ctxutil"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/realtime"
	"github.com/troovstudio/troov-backend/internal/services"
)

type RealtimeHandler struct {
	log        *logger.Logger
	hub        *realtime.SSEHub
	projects   services.ProjectService
	completion services.CompletionService
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub, projects services.ProjectService, completion services.CompletionService) *RealtimeHandler {
	return &RealtimeHandler{
		log:        log.With("handler", "RealtimeHandler"),
		hub:        hub,
		projects:   projects,
		completion: completion,
	}
}

// GET /api/projects/:id/events
func (h *RealtimeHandler) ProjectEvents(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.projects.Get(requestDBC(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	client := h.hub.NewSSEClient(userID)
	client.Logger = h.log.With("sse_client_id", client.ID, "project_id", id)
	h.hub.AddChannel(client, realtime.ProjectChannel(id))
	defer h.hub.CloseClient(client)

	// Seed the stream with the current state; later changes arrive as
	// completion_updated broadcasts.
	go h.completion.Refresh(c.Request.Context(), id)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}

// GET /api/notifications/events
func (h *RealtimeHandler) UserEvents(c *gin.Context) {
	userID := ctxutil.UserID(c.Request.Context())
	client := h.hub.NewSSEClient(userID)
	client.Logger = h.log.With("sse_client_id", client.ID)
	h.hub.AddChannel(client, realtime.UserChannel(userID))
	defer h.hub.CloseClient(client)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
