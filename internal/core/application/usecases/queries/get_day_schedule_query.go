package queries

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrGetDayScheduleQueryIsNotConstructed = errors.New(
	"GetDayScheduleQuery must be created via NewGetDayScheduleQuery constructor",
)

// GetDayScheduleQuery retrieves the jobs of one calendar day in display
// order: manually ranked jobs first by sort position, unranked jobs after
// by scheduled time.
//
// Example:
//
//	day, _ := kernel.DayFromString("2024-06-03")
//	query, _ := NewGetDayScheduleQuery(day)
//	jobs, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read schedule: %w", err)
//	}
type GetDayScheduleQuery struct {
	day kernel.Day

	guard guard.ConstructorGuard
}

// NewGetDayScheduleQuery creates a query for one calendar day's jobs.
func NewGetDayScheduleQuery(day kernel.Day) (GetDayScheduleQuery, error) {
	if err := day.Validate(); err != nil {
		return GetDayScheduleQuery{}, err
	}

	return GetDayScheduleQuery{
		day:   day,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDayScheduleQueryIsNotConstructed if validation fails.
func (q GetDayScheduleQuery) Validate() error {
	return q.guard.Validate(ErrGetDayScheduleQueryIsNotConstructed)
}

// Day returns the calendar day the query covers.
func (q GetDayScheduleQuery) Day() kernel.Day {
	return q.day
}

// GetDayScheduleQueryResponse is one job row of the day schedule read model.
type GetDayScheduleQueryResponse struct {
	ID           kernel.UUID
	CustomerName string
	Address      string
	ScheduledAt  time.Time
	SortOrder    *int
	TechnicianID *kernel.UUID
	Status       string
	Priority     string
}
