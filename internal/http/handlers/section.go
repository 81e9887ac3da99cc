package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/troovstudio/troov-backend/internal/domain/project"
	"github.com/troovstudio/troov-backend/internal/http/response"
	"github.com/troovstudio/troov-backend/internal/services"
)

const maxSectionBody = 2 << 20

type SectionHandler struct {
	sections services.SectionService
}

func NewSectionHandler(sections services.SectionService) *SectionHandler {
	return &SectionHandler{sections: sections}
}

func sectionParam(c *gin.Context) (types.Section, bool) {
	s, ok := types.ParseSection(c.Param("section"))
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_section", fmt.Errorf("unknown section %q", c.Param("section")))
		return "", false
	}
	return s, true
}

// GET /api/projects/:id/sections/:section
func (h *SectionHandler) Load(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	section, ok := sectionParam(c)
	if !ok {
		return
	}
	data, err := h.sections.Load(requestDBC(c), id, section)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"section": section, "data": data})
}

// PUT /api/projects/:id/sections/:section?flush=true
func (h *SectionHandler) Save(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	section, ok := sectionParam(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSectionBody))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	flush := boolQuery(c, "flush")
	data, err := h.sections.Save(requestDBC(c), id, section, body, flush)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	status := http.StatusAccepted
	if flush {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"section": section, "data": data, "saved": flush})
}
