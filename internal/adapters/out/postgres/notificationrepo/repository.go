package notificationrepo

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new queued notification to the database.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
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

// Update saves the notification's final delivery state.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
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

// GetQueued retrieves up to limit queued notifications of the known event
// types, oldest first. Rows with event types the dispatcher cannot render
// stay queued untouched.
func (r *GormNotificationRepository) GetQueued(
	ctx context.Context, limit int,
) ([]*notification.Notification, error) {
	knownTypes := notification.KnownEventTypes()
	typeNames := make([]string, 0, len(knownTypes))
	for _, eventType := range knownTypes {
		typeNames = append(typeNames, eventType.String())
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND event_type IN ?", notification.Queued.String(), typeNames).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	rows := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		row, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		rows = append(rows, row)
	}

	return rows, nil
}
