package files

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"synthdata-backend/internal/shared/server/middleware"
	"synthdata-backend/internal/shared/server/respond"
	"synthdata-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files", h.list)
	rg.GET("/files/stats", h.stats)
	rg.GET("/files/:id/download", h.download)
	rg.DELETE("/files/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileList, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list files", nil)
		}
		return
	}

	resp := make([]gin.H, 0, len(fileList))
	for _, file := range fileList {
		resp = append(resp, toResponse(file))
	}
	respond.OK(c, resp)
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	fileID := c.Param("id")

	file, content, err := h.Svc.Download(c.Request.Context(), userID, fileID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrStorage):
			respond.Error(c, http.StatusInternalServerError, "storage_failure", "failed to read file", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to download file", nil)
		}
		return
	}
	defer content.Close()

	c.Set("fileId", file.ID)
	c.Header("X-File-Id", file.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Header("Content-Type", ContentType(file.Format))
	if file.SizeBytes > 0 {
		c.Header("Content-Length", fmt.Sprintf("%d", file.SizeBytes))
	}
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, content); err != nil {
		telemetry.Warn("files.download.stream_interrupted", map[string]any{
			"file_id": file.ID,
			"error":   err.Error(),
		})
	}
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	fileID := c.Param("id")

	err := h.Svc.Delete(c.Request.Context(), userID, fileID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrStorage):
			respond.Error(c, http.StatusInternalServerError, "storage_failure", "failed to remove file content", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete file", nil)
		}
		return
	}

	respond.OK(c, gin.H{"deleted": fileID})
}

func (h *Handler) stats(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	stats, err := h.Svc.Stats(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute stats", nil)
		}
		return
	}

	respond.OK(c, stats)
}

func toResponse(file File) gin.H {
	return gin.H{
		"id":               file.ID,
		"fileName":         file.FileName,
		"dataKind":         file.DataKind,
		"domain":           file.Domain,
		"format":           file.Format,
		"sizeBytes":        file.SizeBytes,
		"numSamples":       file.NumSamples,
		"downloadCount":    file.DownloadCount,
		"createdAt":        file.CreatedAt,
		"lastDownloadedAt": file.LastDownloadedAt,
	}
}
