// Package changeeventrepo provides data transfer objects and mapping functions
// for change event persistence. Events are append-only; the only mutation the
// repository performs is stamping a group of rows with the digest that
// reported them.
package changeeventrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ChangeEventDTO represents the database structure for persisting change
// events. The route date is stored in its canonical "YYYY-MM-DD" form so the
// per-day delta query needs no time zone arithmetic, and the claiming digest
// is indexed because the delta pass filters on unclaimed rows.
type ChangeEventDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TechnicianID uuid.UUID `gorm:"type:uuid;index"`
	JobID        uuid.UUID `gorm:"type:uuid"`
	RouteDate    string    `gorm:"index"`
	ChangeType   string
	CustomerName string
	Address      string
	FromAt       *time.Time
	ToAt         *time.Time
	DigestID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for change event entities.
// Overrides GORM's default naming convention to use "change_events".
func (ChangeEventDTO) TableName() string {
	return "change_events"
}

// fromDomain converts a change event domain aggregate to its database
// representation.
func fromDomain(event *digest.ChangeEvent) ChangeEventDTO {
	var digestID *uuid.UUID
	if id := event.Digest(); id != nil {
		raw := id.Bytes()
		digestID = &raw
	}

	payload := event.Payload()
	return ChangeEventDTO{
		ID:           event.ID().Bytes(),
		TechnicianID: event.Technician().Bytes(),
		JobID:        event.Job().Bytes(),
		RouteDate:    event.RouteDate().String(),
		ChangeType:   event.Type().String(),
		CustomerName: payload.CustomerName(),
		Address:      payload.Address(),
		FromAt:       payload.FromScheduledAt(),
		ToAt:         payload.ToScheduledAt(),
		DigestID:     digestID,
	}
}

// toDomain converts a database DTO to a change event domain aggregate,
// including its claim state.
func toDomain(dto ChangeEventDTO) (*digest.ChangeEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	technicianID, err := kernel.UUIDFromBytes(dto.TechnicianID[:])
	if err != nil {
		return nil, err
	}

	jobID, err := kernel.UUIDFromBytes(dto.JobID[:])
	if err != nil {
		return nil, err
	}

	routeDate, err := kernel.DayFromString(dto.RouteDate)
	if err != nil {
		return nil, err
	}

	changeType, err := digest.ChangeTypeFromString(dto.ChangeType)
	if err != nil {
		return nil, err
	}

	payload, err := digest.RestorePayload(dto.CustomerName, dto.Address, dto.FromAt, dto.ToAt)
	if err != nil {
		return nil, err
	}

	var digestID *kernel.UUID
	if dto.DigestID != nil {
		dID, digestErr := kernel.UUIDFromBytes((*dto.DigestID)[:])
		if digestErr != nil {
			return nil, digestErr
		}

		digestID = &dID
	}

	return digest.RestoreChangeEvent(id, technicianID, jobID, routeDate, changeType, payload, digestID)
}
