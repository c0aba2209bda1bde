package changeeventrepo

import (
	"context"

	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChangeEventRepository implements ChangeEventRepository using GORM.
type GormChangeEventRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormChangeEventRepository creates a new GORM change event repository.
func NewGormChangeEventRepository(db *gorm.DB, tracker aggregateTracker) *GormChangeEventRepository {
	return &GormChangeEventRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new, unclaimed change event to the database.
func (r *GormChangeEventRepository) Add(ctx context.Context, event *digest.ChangeEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(event.ID(), event)
	return nil
}

// GetUnclaimedForDay retrieves all events for a route day that no digest has
// claimed yet, oldest first.
func (r *GormChangeEventRepository) GetUnclaimedForDay(
	ctx context.Context, day kernel.Day,
) ([]*digest.ChangeEvent, error) {
	if err := day.Validate(); err != nil {
		return nil, err
	}

	var dtos []ChangeEventDTO
	err := r.db.WithContext(ctx).
		Where("route_date = ? AND digest_id IS NULL", day.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*digest.ChangeEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		events = append(events, event)
	}

	return events, nil
}

// Claim stamps the given events with a digest ID. The digest_id IS NULL guard
// makes the claim a no-op for rows another pass got to first; claimed rows
// are never re-stamped.
func (r *GormChangeEventRepository) Claim(
	ctx context.Context, digestID kernel.UUID, eventIDs []kernel.UUID,
) error {
	if err := digestID.Validate(); err != nil {
		return err
	}
	if len(eventIDs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(eventIDs))
	for _, id := range eventIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		ids = append(ids, id.Bytes())
	}

	return r.db.WithContext(ctx).
		Model(&ChangeEventDTO{}).
		Where("id IN ? AND digest_id IS NULL", ids).
		Update("digest_id", digestID.Bytes()).Error
}
