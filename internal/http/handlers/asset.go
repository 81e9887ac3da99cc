package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/troovstudio/troov-backend/internal/http/response"
	"github.com/troovstudio/troov-backend/internal/services"
)

type AssetHandler struct {
	assets services.AssetService
}

func NewAssetHandler(assets services.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// POST /api/projects/:id/assets/upload (multipart: file, category)
func (h *AssetHandler) Upload(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_file", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_file", err)
		return
	}
	defer f.Close()

	asset, err := h.assets.Upload(requestDBC(c), id, services.AssetUpload{
		Filename: fh.Filename,
		Category: c.PostForm("category"),
		Body:     f,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"asset": asset})
}

// DELETE /api/projects/:id/assets/:assetId
func (h *AssetHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.assets.Delete(requestDBC(c), id, c.Param("assetId")); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
