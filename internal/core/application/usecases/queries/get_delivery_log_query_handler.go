package queries

import (
	"context"
	"database/sql"

	"fieldservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryLogQueryHandler reads the delivery audit trail straight from
// the database, newest first.
//
// Example:
//
//	handler := NewGetDeliveryLogQueryHandler(db)
//	query, _ := NewGetDeliveryLogQuery(50)
//
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to read delivery log: %v", err)
//	    return err
//	}
type GetDeliveryLogQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryLogQueryHandler creates a handler for delivery log reads.
// Requires a GORM database connection for query execution.
func NewGetDeliveryLogQueryHandler(db *gorm.DB) GetDeliveryLogQueryHandler {
	return GetDeliveryLogQueryHandler{db: db}
}

// Handle executes the query for the most recent audit rows.
func (h GetDeliveryLogQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryLogQuery,
) ([]GetDeliveryLogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetDeliveryLogQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			recipient,
			role,
			subject,
			status,
			error_message,
			created_at
		FROM delivery_log
		ORDER BY created_at DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetDeliveryLogQueryResponse
		var id uuid.UUID
		var errorMessage sql.NullString

		err = rows.Scan(
			&id,
			&entry.Recipient,
			&entry.Role,
			&entry.Subject,
			&entry.Status,
			&errorMessage,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID
		entry.ErrorMessage = errorMessage.String

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
