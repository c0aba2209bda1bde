// Package ports defines repository and gateway interfaces for the scheduling
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates.
// Provides methods for storing, retrieving, and querying jobs by day
// and technician assignment. Day bounds are evaluated in the service
// time zone the repository was constructed with.
type JobRepository interface {
	// Add persists a new job aggregate to storage.
	// The job must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate.
	// The job must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *job.Job) error

	// UpdateBatch persists changes to several jobs in one call. Used by the
	// bulk commit so a whole editing session lands in a single transaction.
	UpdateBatch(ctx context.Context, aggregates []*job.Job) error

	// Get retrieves a job aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetForDay retrieves all jobs scheduled on a calendar day, ranked ones
	// first by sort position, unranked ones after by scheduled time.
	GetForDay(ctx context.Context, day kernel.Day) ([]*job.Job, error)

	// GetAssignedForDay retrieves the jobs assigned to a technician on a
	// calendar day in the same order, used to build the morning full-plan
	// digest.
	GetAssignedForDay(ctx context.Context, technicianID kernel.UUID, day kernel.Day) ([]*job.Job, error)

	// GetTechniciansForDay retrieves the distinct technicians that have at
	// least one job on a calendar day.
	GetTechniciansForDay(ctx context.Context, day kernel.Day) ([]kernel.UUID, error)

	// CountForTechnicianOnDay counts a technician's jobs on a calendar day,
	// optionally excluding one job. Drives the route-vs-job assignment
	// classification.
	CountForTechnicianOnDay(
		ctx context.Context, technicianID kernel.UUID, day kernel.Day, excludeJobID *kernel.UUID) (int, error)
}
