package domain

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no_show"
)

type AppointmentSource string

const (
	SourceStaff  AppointmentSource = "staff"
	SourceOnline AppointmentSource = "online"
)

type Appointment struct {
	ID            int64             `json:"id"`
	TenantID      int64             `json:"tenant_id" gorm:"index:idx_no_double_booking,unique"`
	CustomerID    *int64            `json:"customer_id,omitempty"`
	VehicleID     *int64            `json:"vehicle_id,omitempty"`
	ServiceItemID *int64            `json:"service_item_id,omitempty"`
	ScheduledAt   time.Time         `json:"scheduled_at" validate:"required" gorm:"index:idx_no_double_booking,unique"`
	Status        AppointmentStatus `json:"status"`
	Source        AppointmentSource `json:"source"`

	// Snapshot for online bookings where no customer row exists yet.
	CustomerName     string `json:"customer_name,omitempty"`
	CustomerPhone    string `json:"customer_phone,omitempty"`
	CustomerEmail    string `json:"customer_email,omitempty"`
	ConfirmationCode string `json:"confirmation_code,omitempty"`

	Notes       string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Customer    *Customer    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Vehicle     *Vehicle     `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	ServiceItem *ServiceItem `json:"service_item,omitempty" gorm:"foreignKey:ServiceItemID"`
}

// CanBeCancelled reports whether the appointment is still in a state
// staff or the customer may cancel.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == AppointmentScheduled || a.Status == AppointmentConfirmed
}
