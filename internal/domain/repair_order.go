package domain

import "time"

type RepairOrderStatus string

const (
	RepairOrderOpen          RepairOrderStatus = "open"
	RepairOrderInProgress    RepairOrderStatus = "in_progress"
	RepairOrderAwaitingParts RepairOrderStatus = "awaiting_parts"
	RepairOrderReady         RepairOrderStatus = "ready"
	RepairOrderClosed        RepairOrderStatus = "closed"
)

type RepairOrderLine struct {
	Description string  `json:"description"`
	Type        string  `json:"type"` // "labor" or "part"
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type RepairOrder struct {
	ID            int64             `json:"id"`
	TenantID      int64             `json:"tenant_id"`
	Number        string            `json:"number"`
	AppointmentID *int64            `json:"appointment_id,omitempty"`
	CustomerID    int64             `json:"customer_id" validate:"required"`
	VehicleID     *int64            `json:"vehicle_id,omitempty"`
	MechanicID    *int64            `json:"mechanic_id,omitempty"`
	Status        RepairOrderStatus `json:"status"`
	Complaint     string            `json:"complaint,omitempty" gorm:"type:text"`
	Diagnosis     string            `json:"diagnosis,omitempty" gorm:"type:text"`
	LaborTotal    float64           `json:"labor_total"`
	PartsTotal    float64           `json:"parts_total"`
	Total         float64           `json:"total"`
	LinesJSON     []byte            `json:"-" gorm:"type:jsonb"`
	OpenedAt      time.Time         `json:"opened_at"`
	ClosedAt      *time.Time        `json:"closed_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Vehicle  *Vehicle  `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

// CanTransitionTo reports whether a status change is allowed. Closed
// orders are terminal.
func (r *RepairOrder) CanTransitionTo(next RepairOrderStatus) bool {
	if r.Status == RepairOrderClosed {
		return false
	}
	switch next {
	case RepairOrderOpen, RepairOrderInProgress, RepairOrderAwaitingParts, RepairOrderReady, RepairOrderClosed:
		return true
	default:
		return false
	}
}
