package repairorders

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autoshop/internal/domain"
	"autoshop/internal/pkg/response"
	"autoshop/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/repairorders")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id/status", h.UpdateStatus)
		g.PUT("/:id/lines", h.UpdateLines)
		g.POST("/:id/close", h.Close)
	}
}

func (h *Handler) List(c *gin.Context) {
	f := repository.RepairOrderFilters{
		Status: c.Query("status"),
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
	}
	if raw := c.Query("mechanic_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid mechanic_id")
			return
		}
		f.MechanicID = &id
	}

	orders, total, err := h.service.List(c.Request.Context(), c.GetInt64("tenant_id"), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"orders": orders, "total": total})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	order, err := h.service.Create(c.Request.Context(), c.GetInt64("tenant_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, order)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	order, err := h.service.Get(c.Request.Context(), c.GetInt64("tenant_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"order": order,
		"lines": h.service.Lines(order),
	})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.GetInt64("tenant_id"), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

func (h *Handler) UpdateLines(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req UpdateLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	order, err := h.service.UpdateLines(c.Request.Context(), c.GetInt64("tenant_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"order": order,
		"lines": h.service.Lines(order),
	})
}

func (h *Handler) Close(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.GetInt64("tenant_id"), id, string(domain.RepairOrderClosed))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrOrderNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Repair order not found")
	case ErrAppointmentNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
	case ErrCustomerNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
	case ErrInvalidStatus:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown repair order status")
	case ErrInvalidTransition:
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", "Status transition not allowed")
	case ErrInvalidLine:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Line items need a description, positive quantity and a type of labor or part")
	case ErrOrderClosed:
		response.Error(c, http.StatusUnprocessableEntity, "ORDER_CLOSED", "Closed orders cannot be edited")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func (h *Handler) idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
