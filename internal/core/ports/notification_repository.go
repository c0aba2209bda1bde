package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for customer
// notifications.
type NotificationRepository interface {
	// Add persists a new queued notification.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists the notification's final delivery state.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// GetQueued retrieves up to limit queued notifications of the known
	// event types, oldest first. Rows with unknown event types are left
	// untouched.
	GetQueued(ctx context.Context, limit int) ([]*notification.Notification, error)
}

// DeliveryLogRepository defines the persistence contract for the append-only
// delivery audit trail. Entries are never updated or deleted.
type DeliveryLogRepository interface {
	// Add appends one delivery attempt to the audit trail.
	Add(ctx context.Context, entry *notification.DeliveryLogEntry) error
}
