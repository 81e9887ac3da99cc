package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/troovstudio/troov-backend/internal/http/response"
	"github.com/troovstudio/troov-backend/internal/services"
)

var errIsCompleteRequired = errors.New("is_complete is required")

type CompletionHandler struct {
	completion services.CompletionService
}

func NewCompletionHandler(completion services.CompletionService) *CompletionHandler {
	return &CompletionHandler{completion: completion}
}

type setOverrideRequest struct {
	IsComplete *bool `json:"is_complete"`
}

// GET /api/projects/:id/completion
func (h *CompletionHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	res, err := h.completion.Get(requestDBC(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}

// PUT /api/projects/:id/completion/:section
func (h *CompletionHandler) SetOverride(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	section, ok := sectionParam(c)
	if !ok {
		return
	}
	var req setOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsComplete == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errIsCompleteRequired)
		return
	}
	res, err := h.completion.SetOverride(requestDBC(c), id, section, *req.IsComplete)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}
