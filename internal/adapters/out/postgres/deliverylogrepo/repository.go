package deliverylogrepo

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// GormDeliveryLogRepository implements DeliveryLogRepository using GORM.
// The repository only appends; the read side goes through the delivery log
// query.
type GormDeliveryLogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryLogRepository creates a new GORM delivery log repository.
func NewGormDeliveryLogRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryLogRepository {
	return &GormDeliveryLogRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends one delivery attempt to the audit trail.
func (r *GormDeliveryLogRepository) Add(ctx context.Context, entry *notification.DeliveryLogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}
