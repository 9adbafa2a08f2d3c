package onboarding

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
	g := rg.Group("/onboarding")
	{
		g.GET("/status", h.Status)
		g.PUT("/profile", h.SaveProfile)
		g.PUT("/hours", h.SaveHours)
		g.POST("/services", h.AddServices)
		g.POST("/complete", h.Complete)
	}
}

func (h *Handler) Status(c *gin.Context) {
	st, err := h.service.Status(c.Request.Context(), c.GetInt64("tenant_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) SaveProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.SaveProfile(c.Request.Context(), c.GetInt64("tenant_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) SaveHours(c *gin.Context) {
	var rules availability.Rules
	if err := c.ShouldBindJSON(&rules); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	saved, err := h.service.SaveHours(c.Request.Context(), c.GetInt64("tenant_id"), &rules)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, saved)
}

func (h *Handler) AddServices(c *gin.Context) {
	var req AddServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	items, err := h.service.AddServices(c.Request.Context(), c.GetInt64("tenant_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"services": items})
}

func (h *Handler) Complete(c *gin.Context) {
	t, err := h.service.Complete(c.Request.Context(), c.GetInt64("tenant_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *availability.ValidationError
	switch {
	case errors.Is(err, ErrTenantNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tenant not found")
	case errors.Is(err, ErrNoServices):
		response.Error(c, http.StatusUnprocessableEntity, "NO_SERVICES", "Add at least one service before completing onboarding")
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message, gin.H{"field": verr.Field})
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
