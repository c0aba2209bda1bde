// Package http exposes the scheduling core over REST. It coordinates between
// HTTP handlers and application use cases; all business rules live behind the
// command and query handlers.
package http

import (
	"net/http"
	"strconv"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/schedule"

	"github.com/labstack/echo/v4"
)

// defaultDeliveryLogLimit is used when the client does not bound the audit
// read.
const defaultDeliveryLogLimit = 50

// Server implements the HTTP surface of the scheduling service.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createJobHandler           commands.CreateJobCommandHandler
	assignTechnicianHandler    commands.AssignTechnicianCommandHandler
	commitScheduleEditsHandler commands.CommitScheduleEditsCommandHandler

	// Query handlers
	getDayScheduleHandler queries.GetDayScheduleQueryHandler
	getDeliveryLogHandler queries.GetDeliveryLogQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createJobHandler commands.CreateJobCommandHandler,
	assignTechnicianHandler commands.AssignTechnicianCommandHandler,
	commitScheduleEditsHandler commands.CommitScheduleEditsCommandHandler,
	getDayScheduleHandler queries.GetDayScheduleQueryHandler,
	getDeliveryLogHandler queries.GetDeliveryLogQueryHandler,
) *Server {
	return &Server{
		createJobHandler:           createJobHandler,
		assignTechnicianHandler:    assignTechnicianHandler,
		commitScheduleEditsHandler: commitScheduleEditsHandler,
		getDayScheduleHandler:      getDayScheduleHandler,
		getDeliveryLogHandler:      getDeliveryLogHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/jobs", s.CreateJob)
	e.PUT("/api/v1/jobs/:jobId/technician", s.AssignTechnician)
	e.GET("/api/v1/schedule/:date", s.GetDaySchedule)
	e.POST("/api/v1/schedule/commit", s.CommitScheduleEdits)
	e.GET("/api/v1/delivery-log", s.GetDeliveryLog)
}

// Error is the JSON error envelope returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewJobRequest is the payload for booking a visit. TechnicianID is optional;
// when present the job is created already assigned.
type NewJobRequest struct {
	CustomerID      string    `json:"customerId"`
	CustomerName    string    `json:"customerName"`
	CustomerAddress string    `json:"customerAddress"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	Priority        string    `json:"priority"`
	ServiceType     string    `json:"serviceType"`
	ServiceTier     string    `json:"serviceTier"`
	Checklist       []string  `json:"checklist"`
	TechnicianID    *string   `json:"technicianId,omitempty"`
}

// JobCreatedResponse returns the identifier of a freshly booked visit.
type JobCreatedResponse struct {
	ID string `json:"id"`
}

// AssignTechnicianRequest carries the technician for a job. A null
// technicianId unassigns.
type AssignTechnicianRequest struct {
	TechnicianID *string `json:"technicianId"`
}

// JobPatchRequest is one pending edit of a commit: any subset of the fields
// may be set. ClearTechnician unassigns and wins over TechnicianID.
type JobPatchRequest struct {
	JobID           string     `json:"jobId"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	SortOrder       *int       `json:"sortOrder,omitempty"`
	TechnicianID    *string    `json:"technicianId,omitempty"`
	ClearTechnician bool       `json:"clearTechnician,omitempty"`
}

// CommitScheduleRequest is the flattened patch list of one editing session.
type CommitScheduleRequest struct {
	Patches []JobPatchRequest `json:"patches"`
}

// ScheduleJobResponse is one row of the day schedule.
type ScheduleJobResponse struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Address      string    `json:"address"`
	ScheduledAt  time.Time `json:"scheduledAt"`
	SortOrder    *int      `json:"sortOrder,omitempty"`
	TechnicianID *string   `json:"technicianId,omitempty"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
}

// DeliveryLogEntryResponse is one row of the delivery audit trail.
type DeliveryLogEntryResponse struct {
	ID           string    `json:"id"`
	Recipient    string    `json:"recipient"`
	Role         string    `json:"role"`
	Subject      string    `json:"subject"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateJob handles POST /api/v1/jobs - books a new service visit.
func (s *Server) CreateJob(ctx echo.Context) error {
	var request NewJobRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid customer ID: " + err.Error(),
		})
	}

	priority, err := job.PriorityFromString(request.Priority)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid priority: " + err.Error(),
		})
	}

	technicianID, err := parseOptionalUUID(request.TechnicianID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid technician ID: " + err.Error(),
		})
	}

	jobID := kernel.NewUUID()
	cmd, err := commands.NewCreateJobCommand(
		jobID,
		job.Customer{ID: customerID, Name: request.CustomerName, Address: request.CustomerAddress},
		request.ScheduledAt,
		priority,
		job.Service{Type: request.ServiceType, Tier: request.ServiceTier, Checklist: request.Checklist},
		technicianID,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid job data: " + err.Error(),
		})
	}

	if handleErr := s.createJobHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Failed to create job",
		})
	}

	return ctx.JSON(http.StatusCreated, JobCreatedResponse{ID: jobID.String()})
}

// AssignTechnician handles PUT /api/v1/jobs/:jobId/technician - assigns,
// reassigns, or unassigns the technician for a job.
func (s *Server) AssignTechnician(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("jobId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid job ID: " + err.Error(),
		})
	}

	var request AssignTechnicianRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	technicianID, err := parseOptionalUUID(request.TechnicianID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid technician ID: " + err.Error(),
		})
	}

	cmd, err := commands.NewAssignTechnicianCommand(jobID, technicianID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid assignment: " + err.Error(),
		})
	}

	if handleErr := s.assignTechnicianHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Failed to assign technician",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CommitScheduleEdits handles POST /api/v1/schedule/commit - applies one
// editing session's patch list in a single transaction.
func (s *Server) CommitScheduleEdits(ctx echo.Context) error {
	var request CommitScheduleRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	patches := make([]schedule.JobPatch, 0, len(request.Patches))
	for _, patchRequest := range request.Patches {
		jobPatch, err := toJobPatch(patchRequest)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid patch: " + err.Error(),
			})
		}
		patches = append(patches, jobPatch)
	}

	cmd, err := commands.NewCommitScheduleEditsCommand(patches)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid commit: " + err.Error(),
		})
	}

	if handleErr := s.commitScheduleEditsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Failed to commit schedule edits",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDaySchedule handles GET /api/v1/schedule/:date - retrieves one day's
// jobs in display order.
func (s *Server) GetDaySchedule(ctx echo.Context) error {
	day, err := kernel.DayFromString(ctx.Param("date"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid date: " + err.Error(),
		})
	}

	query, err := queries.NewGetDayScheduleQuery(day)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	jobs, err := s.getDayScheduleHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve schedule",
		})
	}

	response := make([]ScheduleJobResponse, len(jobs))
	for i, row := range jobs {
		response[i] = ScheduleJobResponse{
			ID:           row.ID.String(),
			CustomerName: row.CustomerName,
			Address:      row.Address,
			ScheduledAt:  row.ScheduledAt,
			SortOrder:    row.SortOrder,
			Status:       row.Status,
			Priority:     row.Priority,
		}
		if row.TechnicianID != nil {
			technicianID := row.TechnicianID.String()
			response[i].TechnicianID = &technicianID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryLog handles GET /api/v1/delivery-log - retrieves the most
// recent delivery attempts, newest first.
func (s *Server) GetDeliveryLog(ctx echo.Context) error {
	limit := defaultDeliveryLogLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid limit: " + err.Error(),
			})
		}
		limit = parsed
	}

	query, err := queries.NewGetDeliveryLogQuery(limit)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	entries, err := s.getDeliveryLogHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve delivery log",
		})
	}

	response := make([]DeliveryLogEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = DeliveryLogEntryResponse{
			ID:           entry.ID.String(),
			Recipient:    entry.Recipient,
			Role:         entry.Role,
			Subject:      entry.Subject,
			Status:       entry.Status,
			ErrorMessage: entry.ErrorMessage,
			CreatedAt:    entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// toJobPatch converts one wire patch into its domain form.
func toJobPatch(request JobPatchRequest) (schedule.JobPatch, error) {
	jobID, err := kernel.UUIDFromString(request.JobID)
	if err != nil {
		return schedule.JobPatch{}, err
	}

	patch := schedule.Patch{
		ScheduledAt: request.ScheduledAt,
		SortOrder:   request.SortOrder,
	}

	if request.ClearTechnician {
		patch.Technician = &schedule.TechnicianPatch{}
	} else if request.TechnicianID != nil {
		technicianID, techErr := kernel.UUIDFromString(*request.TechnicianID)
		if techErr != nil {
			return schedule.JobPatch{}, techErr
		}
		patch.Technician = &schedule.TechnicianPatch{ID: &technicianID}
	}

	return schedule.JobPatch{JobID: jobID, Patch: patch}, nil
}

// parseOptionalUUID parses a nullable wire UUID.
func parseOptionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
