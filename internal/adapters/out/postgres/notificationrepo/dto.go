// Package notificationrepo provides data transfer objects and mapping
// functions for customer notification persistence.
package notificationrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting customer
// notifications. The job reference is nullable: producers occasionally fail
// to attach one and such rows must still round-trip so the dispatcher can
// fail them permanently.
type NotificationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	EventType  string
	JobID      *uuid.UUID `gorm:"type:uuid"`
	Status     string     `gorm:"index"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for notification entities.
// Overrides GORM's default naming convention to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification domain aggregate to its database
// representation.
func fromDomain(aggregate *notification.Notification) NotificationDTO {
	var jobID *uuid.UUID
	if id := aggregate.Job(); id != nil {
		raw := id.Bytes()
		jobID = &raw
	}

	return NotificationDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.Customer().Bytes(),
		EventType:  aggregate.EventType().String(),
		JobID:      jobID,
		Status:     aggregate.Status().String(),
	}
}

// toDomain converts a database DTO to a notification domain aggregate using
// RestoreNotification.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	eventType, err := notification.EventTypeFromString(dto.EventType)
	if err != nil {
		return nil, err
	}

	status, err := notification.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var jobID *kernel.UUID
	if dto.JobID != nil {
		jID, jobErr := kernel.UUIDFromBytes((*dto.JobID)[:])
		if jobErr != nil {
			return nil, jobErr
		}

		jobID = &jID
	}

	return notification.RestoreNotification(id, customerID, eventType, jobID, status)
}
