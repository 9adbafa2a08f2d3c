package appointments

import "time"

type CreateAppointmentRequest struct {
	CustomerID    *int64    `json:"customer_id"`
	VehicleID     *int64    `json:"vehicle_id"`
	ServiceItemID *int64    `json:"service_item_id"`
	ScheduledAt   time.Time `json:"scheduled_at" binding:"required"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Notes         string    `json:"notes"`
}

type RescheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
