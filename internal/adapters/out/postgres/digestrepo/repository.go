package digestrepo

import (
	"context"
	"errors"

	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDigestRepository implements DigestRepository using GORM.
type GormDigestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDigestRepository creates a new GORM digest repository.
func NewGormDigestRepository(db *gorm.DB, tracker aggregateTracker) *GormDigestRepository {
	return &GormDigestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new digest to the database.
func (r *GormDigestRepository) Add(ctx context.Context, aggregate *digest.Digest) error {
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

// Update saves the digest's final delivery state.
func (r *GormDigestRepository) Update(ctx context.Context, aggregate *digest.Digest) error {
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

// Get retrieves a digest by ID.
func (r *GormDigestRepository) Get(ctx context.Context, id kernel.UUID) (*digest.Digest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DigestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("digest", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
