// Package jobrepo provides data transfer objects and mapping functions for job persistence.
// This package implements the repository pattern for the job domain aggregate, handling
// the conversion between domain entities and database representations.
package jobrepo

import (
	"time"

	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for persisting job aggregates.
// Maps job domain entities to relational database tables with proper indexing
// for efficient querying by visit day and technician assignment. Status and
// priority are stored by name so the schedule read model can select them
// without a join.
type JobDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID `gorm:"type:uuid;index"`
	CustomerName     string
	CustomerAddress  string
	ScheduledAt      time.Time `gorm:"index"`
	SortOrder        *int
	TechnicianID     *uuid.UUID `gorm:"type:uuid;index"`
	Status           string
	Priority         string
	ServiceType      string
	ServiceTier      string
	ServiceChecklist []string `gorm:"serializer:json"`
}

// TableName specifies the database table name for job entities.
// Overrides GORM's default naming convention to use "jobs".
func (JobDTO) TableName() string {
	return "jobs"
}

// fromDomain converts a job domain aggregate to its database representation.
// Maps all job attributes including the optional sort position and technician
// assignment.
func fromDomain(aggregate *job.Job) JobDTO {
	var technicianID *uuid.UUID
	if id := aggregate.Technician(); id != nil {
		raw := id.Bytes()
		technicianID = &raw
	}

	return JobDTO{
		ID:               aggregate.ID().Bytes(),
		CustomerID:       aggregate.Customer().ID.Bytes(),
		CustomerName:     aggregate.Customer().Name,
		CustomerAddress:  aggregate.Customer().Address,
		ScheduledAt:      aggregate.ScheduledAt(),
		SortOrder:        aggregate.SortOrder(),
		TechnicianID:     technicianID,
		Status:           aggregate.Status().String(),
		Priority:         aggregate.Priority().String(),
		ServiceType:      aggregate.Service().Type,
		ServiceTier:      aggregate.Service().Tier,
		ServiceChecklist: aggregate.Service().Checklist,
	}
}

// toDomain converts a database DTO to a job domain aggregate.
// Reconstructs the complete aggregate including status, priority, sort
// position, and technician assignment using RestoreJob.
func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var technicianID *kernel.UUID
	if dto.TechnicianID != nil {
		techID, techErr := kernel.UUIDFromBytes((*dto.TechnicianID)[:])
		if techErr != nil {
			return nil, techErr
		}

		technicianID = &techID
	}

	status, err := job.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	priority, err := job.PriorityFromString(dto.Priority)
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(
		id,
		job.Customer{
			ID:      customerID,
			Name:    dto.CustomerName,
			Address: dto.CustomerAddress,
		},
		dto.ScheduledAt,
		dto.SortOrder,
		technicianID,
		status,
		priority,
		job.Service{
			Type:      dto.ServiceType,
			Tier:      dto.ServiceTier,
			Checklist: dto.ServiceChecklist,
		},
	)
}
