package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/troovstudio/troov-backend/internal/http/response"
	"github.com/troovstudio/troov-backend/internal/services"
)

type ProjectHandler struct {
	projects services.ProjectService
}

func NewProjectHandler(projects services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type createProjectRequest struct {
	Title    string     `json:"title"`
	Deadline *time.Time `json:"deadline"`
}

// updateProjectRequest keeps the deadline raw so an explicit null clears it.
type updateProjectRequest struct {
	Title    *string         `json:"title"`
	Deadline json.RawMessage `json:"deadline"`
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	out, err := h.projects.List(requestDBC(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"projects": out})
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	p, err := h.projects.Create(requestDBC(c), req.Title, req.Deadline)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"project": p})
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	p, err := h.projects.Get(requestDBC(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": p})
}

// PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in := services.ProjectUpdate{Title: req.Title}
	switch {
	case len(req.Deadline) == 0:
	case string(req.Deadline) == "null":
		in.ClearDeadline = true
	default:
		var d time.Time
		if err := json.Unmarshal(req.Deadline, &d); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_deadline", err)
			return
		}
		in.Deadline = &d
	}
	p, err := h.projects.Update(requestDBC(c), id, in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": p})
}

// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.projects.Delete(requestDBC(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
