package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autoshop/internal/availability"
	"autoshop/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/settings")
	{
		g.GET("/profile", h.GetProfile)
		g.PUT("/profile", h.UpdateProfile)
		g.GET("/availability", h.GetAvailability)
		g.PUT("/availability", h.UpdateAvailability)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	t, err := h.service.GetProfile(c.Request.Context(), c.GetInt64("tenant_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("tenant_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	rules, err := h.service.GetAvailability(c.Request.Context(), c.GetInt64("tenant_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rules)
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	var rules availability.Rules
	if err := c.ShouldBindJSON(&rules); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	saved, err := h.service.UpdateAvailability(c.Request.Context(), c.GetInt64("tenant_id"), &rules)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, saved)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *availability.ValidationError
	switch {
	case errors.Is(err, ErrTenantNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tenant not found")
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message, gin.H{"field": verr.Field})
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
