package queries

import (
	"context"
	"database/sql"
	"time"

	"fieldservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDayScheduleQueryHandler reads one day's jobs straight from the
// database. Uses direct SQL for optimal read performance in the CQRS
// pattern; the ordering matches what the schedule board shows operators.
//
// Example:
//
//	handler := NewGetDayScheduleQueryHandler(db, loc)
//	day, _ := kernel.DayFromString("2024-06-03")
//	query, _ := NewGetDayScheduleQuery(day)
//
//	jobs, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to read schedule: %v", err)
//	    return err
//	}
type GetDayScheduleQueryHandler struct {
	db  *gorm.DB
	loc *time.Location
}

// NewGetDayScheduleQueryHandler creates a handler for day schedule reads.
// Requires a GORM database connection and the service time zone the day
// bounds are evaluated in.
func NewGetDayScheduleQueryHandler(db *gorm.DB, loc *time.Location) GetDayScheduleQueryHandler {
	return GetDayScheduleQueryHandler{db: db, loc: loc}
}

// Handle executes the query for one calendar day.
// Ranked jobs come first by sort position, unranked jobs after by scheduled
// time.
func (h GetDayScheduleQueryHandler) Handle(
	ctx context.Context,
	query GetDayScheduleQuery,
) ([]GetDayScheduleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]GetDayScheduleQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			customer_address,
			scheduled_at,
			sort_order,
			technician_id,
			status,
			priority
		FROM jobs
		WHERE scheduled_at >= ? AND scheduled_at < ?
		ORDER BY (sort_order IS NULL), sort_order, scheduled_at
	`, query.Day().Start(h.loc), query.Day().End(h.loc)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobResp GetDayScheduleQueryResponse
		var id uuid.UUID
		var sortOrder sql.NullInt64
		var technicianID uuid.NullUUID

		err = rows.Scan(
			&id,
			&jobResp.CustomerName,
			&jobResp.Address,
			&jobResp.ScheduledAt,
			&sortOrder,
			&technicianID,
			&jobResp.Status,
			&jobResp.Priority,
		)
		if err != nil {
			return nil, err
		}

		jobID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		jobResp.ID = jobID

		if sortOrder.Valid {
			position := int(sortOrder.Int64)
			jobResp.SortOrder = &position
		}
		if technicianID.Valid {
			techID, techErr := kernel.UUIDFromBytes(technicianID.UUID[:])
			if techErr != nil {
				return nil, techErr
			}
			jobResp.TechnicianID = &techID
		}

		jobs = append(jobs, jobResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
