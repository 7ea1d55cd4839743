package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"synthdata-backend/internal/files"
	"synthdata-backend/internal/shared/server/middleware"
	"synthdata-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/generate/domains", h.domains)
	rg.GET("/generate/history", h.history)
	rg.POST("/generate/tabular", h.tabular)
	rg.POST("/generate/chat", h.chat)
	rg.POST("/generate/email", h.email)
}

func (h *Handler) domains(c *gin.Context) {
	respond.OK(c, gin.H{
		"tabular_domains": h.Svc.Tabular.Domains(),
		"chat_domains":    ChatDomains(),
		"email_domains":   EmailDomains(),
	})
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.Svc.HistoryByOwner(c.Request.Context(), userID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list generation history", nil)
		return
	}
	if records == nil {
		records = []HistoryRecord{}
	}
	respond.OK(c, records)
}

func (h *Handler) tabular(c *gin.Context) {
	var req TabularRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.GenerateTabular(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.stream(c, result)
}

func (h *Handler) chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.GenerateChat(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.stream(c, result)
}

func (h *Handler) email(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.GenerateEmail(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.stream(c, result)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrGeneratorUnavailable):
		respond.Error(c, http.StatusBadGateway, "generator_unavailable", "data generator failed or timed out", nil)
	case errors.Is(err, files.ErrStorage):
		respond.Error(c, http.StatusInternalServerError, "storage_failure", "failed to store generated data", nil)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		c.Abort()
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "generation failed", nil)
	}
}

func (h *Handler) stream(c *gin.Context, result Result) {
	c.Set("fileId", result.File.ID)
	c.Header("X-File-Id", result.File.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.File.FileName))
	c.Data(http.StatusOK, files.ContentType(result.File.Format), result.Content)
}
