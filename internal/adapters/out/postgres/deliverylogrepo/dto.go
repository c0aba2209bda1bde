// Package deliverylogrepo provides data transfer objects and mapping
// functions for the delivery audit trail. The table is append-only: rows are
// never updated or deleted, and a failed attempt's row is the only place its
// error surfaces.
package deliverylogrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// Delivery outcome names as stored in the status column.
const (
	statusSent   = "SENT"
	statusFailed = "FAILED"
)

// DeliveryLogDTO represents the database structure for persisting delivery
// attempts. All reference columns are nullable; whichever records produced
// the delivery are linked, the rest stay NULL.
type DeliveryLogDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Recipient    string
	Role         string
	Subject      string
	Body         string
	Status       string
	ErrorMessage *string
	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`
	TechnicianID *uuid.UUID `gorm:"type:uuid;index"`
	JobID        *uuid.UUID `gorm:"type:uuid"`
	DigestID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"index"`
}

// TableName specifies the database table name for delivery log entities.
// Overrides GORM's default naming convention to use "delivery_log".
func (DeliveryLogDTO) TableName() string {
	return "delivery_log"
}

// fromDomain converts a delivery log entry to its database representation.
func fromDomain(entry *notification.DeliveryLogEntry) DeliveryLogDTO {
	status := statusSent
	var errorMessage *string
	if !entry.Succeeded() {
		status = statusFailed
		message := entry.ErrorMessage()
		errorMessage = &message
	}

	refs := entry.Refs()
	return DeliveryLogDTO{
		ID:           entry.ID().Bytes(),
		Recipient:    entry.Recipient(),
		Role:         entry.Role().String(),
		Subject:      entry.Subject(),
		Body:         entry.Body(),
		Status:       status,
		ErrorMessage: errorMessage,
		CustomerID:   optionalBytes(refs.CustomerID),
		TechnicianID: optionalBytes(refs.TechnicianID),
		JobID:        optionalBytes(refs.JobID),
		DigestID:     optionalBytes(refs.DigestID),
		CreatedAt:    entry.CreatedAt(),
	}
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
