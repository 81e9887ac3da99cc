package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/troovstudio/troov-backend/internal/http/response"
	"github.com/troovstudio/troov-backend/internal/services"
)

type SummaryHandler struct {
	summaries services.SummaryService
	cards     services.ProgressCardService
}

func NewSummaryHandler(summaries services.SummaryService, cards services.ProgressCardService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries, cards: cards}
}

// GET /api/projects/:id/summary
func (h *SummaryHandler) Export(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.summaries.Export(requestDBC(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/projects/:id/progress.png
func (h *SummaryHandler) ProgressCard(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	png, err := h.cards.Render(requestDBC(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
