package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/http/response"
	"github.com/troovstudio/troov-backend/internal/services"
)

type TaskHandler struct {
	tasks services.TaskService
}

func NewTaskHandler(tasks services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type createTaskRequest struct {
	Title string `json:"title"`
}

type reorderTasksRequest struct {
	TaskIDs []uuid.UUID `json:"task_ids"`
}

// GET /api/projects/:id/tasks
func (h *TaskHandler) List(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	tasks, err := h.tasks.List(requestDBC(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tasks": tasks})
}

// POST /api/projects/:id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	task, err := h.tasks.Create(requestDBC(c), id, req.Title)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"task": task})
}

// PATCH /api/projects/:id/tasks/:taskId
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	taskID, ok := uuidParam(c, "taskId")
	if !ok {
		return
	}
	var req services.TaskUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	task, err := h.tasks.Update(requestDBC(c), id, taskID, req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"task": task})
}

// PUT /api/projects/:id/tasks/order
func (h *TaskHandler) Reorder(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tasks, err := h.tasks.Reorder(requestDBC(c), id, req.TaskIDs)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tasks": tasks})
}

// DELETE /api/projects/:id/tasks/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	taskID, ok := uuidParam(c, "taskId")
	if !ok {
		return
	}
	if err := h.tasks.Delete(requestDBC(c), id, taskID); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
