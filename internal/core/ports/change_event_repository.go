package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/kernel"
)

// ChangeEventRepository defines the persistence contract for change events.
// Events are append-only; the only permitted mutation is claiming, which
// stamps a group of events with the digest that reported them.
type ChangeEventRepository interface {
	// Add persists a new, unclaimed change event.
	Add(ctx context.Context, event *digest.ChangeEvent) error

	// GetUnclaimedForDay retrieves all events for a route day that no digest
	// has claimed yet, oldest first.
	GetUnclaimedForDay(ctx context.Context, day kernel.Day) ([]*digest.ChangeEvent, error)

	// Claim stamps the given events with a digest ID. Events already claimed
	// must not be overwritten; callers pass only events they verified as
	// unclaimed via the aggregate's Claim method.
	Claim(ctx context.Context, digestID kernel.UUID, eventIDs []kernel.UUID) error
}

// DigestRepository defines the persistence contract for dispatched digests.
type DigestRepository interface {
	// Add persists a digest row, created in queued status before the send
	// attempt.
	Add(ctx context.Context, aggregate *digest.Digest) error

	// Update persists the digest's final delivery state.
	Update(ctx context.Context, aggregate *digest.Digest) error
}
