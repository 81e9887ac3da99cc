package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/troovstudio/troov-backend/internal/http/response"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/services"
)

type AccountHandler struct {
	support   services.SupportService
	billing   services.BillingService
	deadlines services.DeadlineService
}

func NewAccountHandler(support services.SupportService, billing services.BillingService, deadlines services.DeadlineService) *AccountHandler {
	return &AccountHandler{support: support, billing: billing, deadlines: deadlines}
}

type supportTicketRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// POST /api/support/tickets
func (h *AccountHandler) CreateSupportTicket(c *gin.Context) {
	var req supportTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, apierr.BadRequest("invalid_ticket", "Subject and message are required"))
		return
	}
	id, err := h.support.CreateTicket(requestDBC(c), req.Subject, req.Message)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true, "ticketId": id})
}

// POST /api/billing/portal-session
func (h *AccountHandler) PortalSession(c *gin.Context) {
	url, err := h.billing.PortalSession(requestDBC(c), services.ReturnOrigin{
		Origin:  c.GetHeader("Origin"),
		Referer: c.GetHeader("Referer"),
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"url": url})
}

// POST /api/cron/deadline-check
func (h *AccountHandler) DeadlineCheck(c *gin.Context) {
	created, err := h.deadlines.Run(requestDBC(c), time.Now())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "deadline_check_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"created": created})
}
