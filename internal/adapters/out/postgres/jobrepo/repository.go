package jobrepo

import (
	"context"
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// dayOrder ranks a day's jobs the way the schedule board shows them:
// manually ranked jobs first by sort position, unranked jobs after by
// scheduled time.
const dayOrder = "(sort_order IS NULL), sort_order, scheduled_at"

// GormJobRepository implements JobRepository using GORM.
// Day bounds are evaluated in the service time zone the repository was
// constructed with.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	loc     *time.Location
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker, loc *time.Location) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
		loc:     loc,
	}
}

// Add saves a new job to the database.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing job to the database.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	// Save instead of Updates: sort_order and technician_id must be able to
	// go back to NULL when a rank is cleared or a technician removed.
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateBatch saves several jobs in one call, so a whole editing session
// lands inside a single transaction.
func (r *GormJobRepository) UpdateBatch(ctx context.Context, aggregates []*job.Job) error {
	for _, aggregate := range aggregates {
		if err := r.Update(ctx, aggregate); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForDay retrieves all jobs scheduled on a calendar day in display order.
func (r *GormJobRepository) GetForDay(ctx context.Context, day kernel.Day) ([]*job.Job, error) {
	if err := day.Validate(); err != nil {
		return nil, err
	}

	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("scheduled_at >= ? AND scheduled_at < ?", day.Start(r.loc), day.End(r.loc)).
		Order(dayOrder).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAssignedForDay retrieves the jobs assigned to a technician on a calendar
// day in display order.
func (r *GormJobRepository) GetAssignedForDay(
	ctx context.Context, technicianID kernel.UUID, day kernel.Day,
) ([]*job.Job, error) {
	if err := errors.Join(technicianID.Validate(), day.Validate()); err != nil {
		return nil, err
	}

	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("technician_id = ?", technicianID.Bytes()).
		Where("scheduled_at >= ? AND scheduled_at < ?", day.Start(r.loc), day.End(r.loc)).
		Order(dayOrder).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetTechniciansForDay retrieves the distinct technicians with at least one
// job on a calendar day.
func (r *GormJobRepository) GetTechniciansForDay(ctx context.Context, day kernel.Day) ([]kernel.UUID, error) {
	if err := day.Validate(); err != nil {
		return nil, err
	}

	var rawIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("technician_id IS NOT NULL").
		Where("scheduled_at >= ? AND scheduled_at < ?", day.Start(r.loc), day.End(r.loc)).
		Distinct().
		Order("technician_id").
		Pluck("technician_id", &rawIDs).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// CountForTechnicianOnDay counts a technician's jobs on a calendar day,
// optionally excluding one job.
func (r *GormJobRepository) CountForTechnicianOnDay(
	ctx context.Context, technicianID kernel.UUID, day kernel.Day, excludeJobID *kernel.UUID,
) (int, error) {
	if err := errors.Join(technicianID.Validate(), day.Validate()); err != nil {
		return 0, err
	}

	query := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("technician_id = ?", technicianID.Bytes()).
		Where("scheduled_at >= ? AND scheduled_at < ?", day.Start(r.loc), day.End(r.loc))
	if excludeJobID != nil {
		query = query.Where("id <> ?", excludeJobID.Bytes())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

func toDomainSlice(dtos []JobDTO) ([]*job.Job, error) {
	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
