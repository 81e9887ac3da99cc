package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/troovstudio/troov-backend/internal/http/response"
	"github.com/troovstudio/troov-backend/internal/services"
)

type MoodBoardHandler struct {
	moodBoard services.MoodBoardService
}

func NewMoodBoardHandler(moodBoard services.MoodBoardService) *MoodBoardHandler {
	return &MoodBoardHandler{moodBoard: moodBoard}
}

// GET /api/projects/:id/mood-board/items
func (h *MoodBoardHandler) ListItems(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	items, err := h.moodBoard.ListItems(requestDBC(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// POST /api/projects/:id/mood-board/items
func (h *MoodBoardHandler) AddItem(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req services.MoodBoardItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := h.moodBoard.AddItem(requestDBC(c), id, req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"item": item})
}

// PATCH /api/projects/:id/mood-board/items/:itemId
func (h *MoodBoardHandler) UpdateItem(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "itemId")
	if !ok {
		return
	}
	var req services.MoodBoardItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.moodBoard.UpdateItem(requestDBC(c), id, itemID, req); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/projects/:id/mood-board/items/:itemId
func (h *MoodBoardHandler) DeleteItem(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "itemId")
	if !ok {
		return
	}
	if err := h.moodBoard.DeleteItem(requestDBC(c), id, itemID); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
