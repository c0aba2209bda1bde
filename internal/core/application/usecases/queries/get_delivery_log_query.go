package queries

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrGetDeliveryLogQueryIsNotConstructed = errors.New(
		"GetDeliveryLogQuery must be created via NewGetDeliveryLogQuery constructor",
	)
	ErrLimitIsInvalid = errors.New("limit must be greater than 0")
)

// GetDeliveryLogQuery retrieves the most recent delivery attempts from the
// audit trail, newest first. This is the only place send failures surface.
//
// Example:
//
//	query, _ := NewGetDeliveryLogQuery(50)
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read delivery log: %w", err)
//	}
type GetDeliveryLogQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetDeliveryLogQuery creates a query for the most recent limit audit
// rows.
func NewGetDeliveryLogQuery(limit int) (GetDeliveryLogQuery, error) {
	if limit <= 0 {
		return GetDeliveryLogQuery{}, ErrLimitIsInvalid
	}

	return GetDeliveryLogQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryLogQueryIsNotConstructed if validation fails.
func (q GetDeliveryLogQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryLogQueryIsNotConstructed)
}

// Limit returns the maximum number of rows to retrieve.
func (q GetDeliveryLogQuery) Limit() int {
	return q.limit
}

// GetDeliveryLogQueryResponse is one audit row of the delivery log read
// model.
type GetDeliveryLogQueryResponse struct {
	ID           kernel.UUID
	Recipient    string
	Role         string
	Subject      string
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}
