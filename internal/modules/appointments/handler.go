package appointments

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autoshop/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/appointments")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/calendar", h.AdminCalendar)
		g.GET("/:id", h.Get)
		g.PUT("/:id/reschedule", h.Reschedule)
		g.PUT("/:id/status", h.UpdateStatus)
		g.DELETE("/:id", h.Cancel)
	}
}

// List serves both ?date=yyyy-MM-dd (one day) and ?from&to (range).
func (h *Handler) List(c *gin.Context) {
	tenantID := c.GetInt64("tenant_id")
	ctx := c.Request.Context()

	if date := c.Query("date"); date != "" {
		list, err := h.service.ListDay(ctx, tenantID, date)
		if err != nil {
			h.writeError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"appointments": list})
		return
	}

	list, err := h.service.ListRange(ctx, tenantID, c.Query("from"), c.Query("to"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": list})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	appt, err := h.service.Create(c.Request.Context(), c.GetInt64("tenant_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, appt)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	appt, err := h.service.Get(c.Request.Context(), c.GetInt64("tenant_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, appt)
}

func (h *Handler) AdminCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid month")
		return
	}

	var serviceID int64
	if raw := c.Query("service_id"); raw != "" {
		serviceID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service_id")
			return
		}
	}

	cal, err := h.service.AdminCalendar(c.Request.Context(), c.GetInt64("tenant_id"), year, month, serviceID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cal)
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	appt, err := h.service.Reschedule(c.Request.Context(), c.GetInt64("tenant_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, appt)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	appt, err := h.service.UpdateStatus(c.Request.Context(), c.GetInt64("tenant_id"), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, appt)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), c.GetInt64("tenant_id"), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrAppointmentNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
	case ErrServiceNotFound:
		response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
	case ErrInvalidDate:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected yyyy-MM-dd")
	case ErrInvalidStatus:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown appointment status")
	case ErrNotCancellable:
		response.Error(c, http.StatusUnprocessableEntity, "NOT_CANCELLABLE", "Appointment can no longer be cancelled")
	case ErrDoubleBooking:
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Another appointment already starts at that time")
	default:
		if isAvailabilityInputError(err) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
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
