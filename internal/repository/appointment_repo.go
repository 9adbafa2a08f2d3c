package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	TenantID         int64      `gorm:"column:tenant_id;index"`
	CustomerID       *int64     `gorm:"column:customer_id"`
	VehicleID        *int64     `gorm:"column:vehicle_id"`
	ServiceItemID    *int64     `gorm:"column:service_item_id"`
	ScheduledAt      time.Time  `gorm:"column:scheduled_at"`
	Status           string     `gorm:"column:status"`
	Source           string     `gorm:"column:source"`
	CustomerName     *string    `gorm:"column:customer_name"`
	CustomerPhone    *string    `gorm:"column:customer_phone"`
	CustomerEmail    *string    `gorm:"column:customer_email"`
	ConfirmationCode *string    `gorm:"column:confirmation_code"`
	Notes            *string    `gorm:"column:notes"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
	CancelledAt      *time.Time `gorm:"column:cancelled_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	return &domain.Appointment{
		ID:               m.ID,
		TenantID:         m.TenantID,
		CustomerID:       m.CustomerID,
		VehicleID:        m.VehicleID,
		ServiceItemID:    m.ServiceItemID,
		ScheduledAt:      m.ScheduledAt,
		Status:           domain.AppointmentStatus(m.Status),
		Source:           domain.AppointmentSource(m.Source),
		CustomerName:     strOrEmpty(m.CustomerName),
		CustomerPhone:    strOrEmpty(m.CustomerPhone),
		CustomerEmail:    strOrEmpty(m.CustomerEmail),
		ConfirmationCode: strOrEmpty(m.ConfirmationCode),
		Notes:            strOrEmpty(m.Notes),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		CancelledAt:      m.CancelledAt,
	}
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	return appointmentModel{
		ID:               a.ID,
		TenantID:         a.TenantID,
		CustomerID:       a.CustomerID,
		VehicleID:        a.VehicleID,
		ServiceItemID:    a.ServiceItemID,
		ScheduledAt:      a.ScheduledAt,
		Status:           string(a.Status),
		Source:           string(a.Source),
		CustomerName:     strOrNil(a.CustomerName),
		CustomerPhone:    strOrNil(a.CustomerPhone),
		CustomerEmail:    strOrNil(a.CustomerEmail),
		ConfirmationCode: strOrNil(a.ConfirmationCode),
		Notes:            strOrNil(a.Notes),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
		CancelledAt:      a.CancelledAt,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Appointment, error) {
	var m appointmentModel
	tx := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

func (r *AppointmentRepository) GetByConfirmationCode(ctx context.Context, tenantID int64, code string) (*domain.Appointment, error) {
	var m appointmentModel
	tx := r.db.WithContext(ctx).
		Where("tenant_id = ? AND confirmation_code = ?", tenantID, code).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

func (r *AppointmentRepository) ListByRange(ctx context.Context, tenantID int64, from, to time.Time) ([]domain.Appointment, error) {
	var models []appointmentModel
	tx := r.db.WithContext(ctx).
		Where("tenant_id = ? AND scheduled_at >= ? AND scheduled_at < ?", tenantID, from, to).
		Order("scheduled_at").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Appointment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}

// ListScheduledStarts returns the scheduled start instants of every
// appointment for the tenant, regardless of status. This is the
// conflict input for slot generation.
func (r *AppointmentRepository) ListScheduledStarts(ctx context.Context, tenantID int64) ([]time.Time, error) {
	var starts []time.Time
	tx := r.db.WithContext(ctx).
		Model(&appointmentModel{}).
		Where("tenant_id = ?", tenantID).
		Order("scheduled_at").
		Pluck("scheduled_at", &starts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return starts, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, tenantID, id int64, status domain.AppointmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&appointmentModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("status", string(status)).Error
}

func (r *AppointmentRepository) Cancel(ctx context.Context, tenantID, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&appointmentModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]any{
			"status":       string(domain.AppointmentCancelled),
			"cancelled_at": &now,
		}).Error
}
