package booking

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
	pub := rg.Group("/public/:slug")
	{
		pub.GET("", h.GetLanding)
		pub.GET("/services", h.ListServices)
		pub.GET("/calendar", h.GetCalendar)
		pub.GET("/slots", h.GetDaySlots)
		pub.POST("/bookings", h.CreateBooking)
		pub.GET("/bookings/:code", h.LookupBooking)
	}
}

func (h *Handler) GetLanding(c *gin.Context) {
	landing, err := h.service.GetLanding(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, landing)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) GetCalendar(c *gin.Context) {
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

	cal, err := h.service.GetCalendar(c.Request.Context(), c.Param("slug"), year, month, serviceID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cal)
}

func (h *Handler) GetDaySlots(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Query("service_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service_id")
		return
	}

	slots, err := h.service.GetDaySlots(c.Request.Context(), c.Param("slug"), c.Query("date"), serviceID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	confirmation, err := h.service.CreateBooking(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, confirmation)
}

func (h *Handler) LookupBooking(c *gin.Context) {
	appt, err := h.service.LookupBooking(c.Request.Context(), c.Param("slug"), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"scheduled_at": appt.ScheduledAt,
		"status":       appt.Status,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrTenantNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Shop not found")
	case ErrBookingNotFound:
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	case ErrServiceNotFound:
		response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
	case ErrNotBookable:
		response.Error(c, http.StatusUnprocessableEntity, "NOT_BOOKABLE", "Service is not bookable online")
	case ErrInvalidDate:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected yyyy-MM-dd")
	case ErrSlotUnavailable:
		response.Error(c, http.StatusConflict, "SLOT_UNAVAILABLE", "Requested slot is not available")
	case ErrDoubleBooking:
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Slot was just taken, pick another")
	default:
		if isAvailabilityInputError(err) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
