// Package digestrepo provides data transfer objects and mapping functions for
// digest persistence. A digest row is written in queued status before the
// send attempt and finalized to its delivery outcome afterwards.
package digestrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DigestDTO represents the database structure for persisting digests.
type DigestDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TechnicianID uuid.UUID `gorm:"type:uuid;index"`
	RouteDate    string    `gorm:"index"`
	Window       string
	Status       string
	ScheduledFor time.Time
	SentAt       *time.Time
}

// TableName specifies the database table name for digest entities.
// Overrides GORM's default naming convention to use "digests".
func (DigestDTO) TableName() string {
	return "digests"
}

// fromDomain converts a digest domain aggregate to its database
// representation.
func fromDomain(aggregate *digest.Digest) DigestDTO {
	return DigestDTO{
		ID:           aggregate.ID().Bytes(),
		TechnicianID: aggregate.Technician().Bytes(),
		RouteDate:    aggregate.RouteDate().String(),
		Window:       aggregate.Window().String(),
		Status:       aggregate.Status().String(),
		ScheduledFor: aggregate.ScheduledFor(),
		SentAt:       aggregate.SentAt(),
	}
}

// toDomain converts a database DTO to a digest domain aggregate using
// RestoreDigest.
func toDomain(dto DigestDTO) (*digest.Digest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	technicianID, err := kernel.UUIDFromBytes(dto.TechnicianID[:])
	if err != nil {
		return nil, err
	}

	routeDate, err := kernel.DayFromString(dto.RouteDate)
	if err != nil {
		return nil, err
	}

	window, err := digest.WindowFromString(dto.Window)
	if err != nil {
		return nil, err
	}

	status, err := digest.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return digest.RestoreDigest(id, technicianID, routeDate, window, status, dto.ScheduledFor, dto.SentAt)
}
