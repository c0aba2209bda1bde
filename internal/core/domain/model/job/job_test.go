package job_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() job.Customer {
	return job.Customer{
		ID:      kernel.NewUUID(),
		Name:    "Dana Whitfield",
		Address: "18 Lakeshore Dr",
	}
}

func validService() job.Service {
	return job.Service{
		Type:      "pool-cleaning",
		Tier:      "standard",
		Checklist: []string{"skim", "brush", "test-chemicals"},
	}
}

func TestNewJob(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, chicago)
	visitAt := time.Date(2024, time.June, 3, 9, 30, 0, 0, chicago)

	t.Run("should create valid job with all valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		customer := validCustomer()

		j, jobErr := job.NewJob(id, customer, visitAt, job.PriorityNormal, validService(), now, chicago)

		require.NoError(t, jobErr)
		require.NoError(t, j.Validate())
		assert.True(t, j.ID().IsEqual(id))
		assert.Equal(t, customer, j.Customer())
		assert.Equal(t, visitAt, j.ScheduledAt())
		assert.Equal(t, job.Scheduled, j.Status())
		assert.Equal(t, job.PriorityNormal, j.Priority())
		assert.Nil(t, j.SortOrder())
		assert.Nil(t, j.Technician())
		assert.False(t, j.IsAssigned())
	})

	t.Run("job due today starts pending", func(t *testing.T) {
		today := time.Date(2024, time.June, 1, 15, 0, 0, 0, chicago)

		j, jobErr := job.NewJob(kernel.NewUUID(), validCustomer(), today, job.PriorityUrgent, validService(), now, chicago)

		require.NoError(t, jobErr)
		assert.Equal(t, job.Pending, j.Status())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		j, jobErr := job.NewJob(invalidID, validCustomer(), visitAt, job.PriorityNormal, validService(), now, chicago)

		require.Error(t, jobErr)
		assert.Nil(t, j)
		assert.Contains(t, jobErr.Error(), "UUID must be created")
	})

	t.Run("should fail with missing customer fields", func(t *testing.T) {
		customer := validCustomer()
		customer.Name = ""
		customer.Address = ""

		j, jobErr := job.NewJob(kernel.NewUUID(), customer, visitAt, job.PriorityNormal, validService(), now, chicago)

		require.Error(t, jobErr)
		assert.Nil(t, j)
		assert.Contains(t, jobErr.Error(), "customer name")
		assert.Contains(t, jobErr.Error(), "address")
	})

	t.Run("should fail with zero visit time", func(t *testing.T) {
		j, jobErr := job.NewJob(kernel.NewUUID(), validCustomer(), time.Time{}, job.PriorityNormal, validService(), now, chicago)

		require.Error(t, jobErr)
		assert.Nil(t, j)
		require.ErrorIs(t, jobErr, job.ErrScheduledAtIsRequired)
	})

	t.Run("should fail with invalid priority", func(t *testing.T) {
		j, jobErr := job.NewJob(kernel.NewUUID(), validCustomer(), visitAt, job.PriorityUnknown, validService(), now, chicago)

		require.Error(t, jobErr)
		assert.Nil(t, j)
		assert.Contains(t, jobErr.Error(), "priority is invalid")
	})

	t.Run("zero value job fails validation", func(t *testing.T) {
		var j job.Job

		require.ErrorIs(t, j.Validate(), job.ErrJobIsNotConstructed)
	})
}

func TestRestoreJob(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	visitAt := time.Date(2024, time.June, 3, 9, 30, 0, 0, chicago)

	t.Run("restores sort position, technician, and status verbatim", func(t *testing.T) {
		techID := kernel.NewUUID()
		sortOrder := 2

		j, jobErr := job.RestoreJob(
			kernel.NewUUID(), validCustomer(), visitAt,
			&sortOrder, &techID, job.OnTheWay, job.PriorityUrgent, validService(),
		)

		require.NoError(t, jobErr)
		require.NoError(t, j.Validate())
		require.NotNil(t, j.SortOrder())
		assert.Equal(t, 2, *j.SortOrder())
		require.NotNil(t, j.Technician())
		assert.True(t, j.Technician().IsEqual(techID))
		assert.Equal(t, job.OnTheWay, j.Status())
	})

	t.Run("rejects invalid persisted status", func(t *testing.T) {
		j, jobErr := job.RestoreJob(
			kernel.NewUUID(), validCustomer(), visitAt,
			nil, nil, job.Unknown, job.PriorityNormal, validService(),
		)

		require.Error(t, jobErr)
		assert.Nil(t, j)
	})

	t.Run("rejects negative persisted sort position", func(t *testing.T) {
		sortOrder := -1

		j, jobErr := job.RestoreJob(
			kernel.NewUUID(), validCustomer(), visitAt,
			&sortOrder, nil, job.Pending, job.PriorityNormal, validService(),
		)

		require.Error(t, jobErr)
		assert.Nil(t, j)
		require.ErrorIs(t, jobErr, job.ErrSortOrderIsNegative)
	})
}

func TestJob_Assignment(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, chicago)
	visitAt := time.Date(2024, time.June, 3, 9, 30, 0, 0, chicago)

	newJob := func(t *testing.T) *job.Job {
		t.Helper()
		j, jobErr := job.NewJob(kernel.NewUUID(), validCustomer(), visitAt, job.PriorityNormal, validService(), now, chicago)
		require.NoError(t, jobErr)
		return j
	}

	t.Run("assign and reassign", func(t *testing.T) {
		j := newJob(t)
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, j.AssignTechnician(first))
		assert.True(t, j.Technician().IsEqual(first))

		require.NoError(t, j.AssignTechnician(second))
		assert.True(t, j.Technician().IsEqual(second))
	})

	t.Run("unassign clears the technician", func(t *testing.T) {
		j := newJob(t)
		require.NoError(t, j.AssignTechnician(kernel.NewUUID()))

		require.NoError(t, j.Unassign())
		assert.Nil(t, j.Technician())
		assert.False(t, j.IsAssigned())
	})

	t.Run("assign rejects zero UUID", func(t *testing.T) {
		j := newJob(t)
		var zero kernel.UUID

		require.Error(t, j.AssignTechnician(zero))
	})

	t.Run("completed jobs are frozen", func(t *testing.T) {
		j, jobErr := job.RestoreJob(
			kernel.NewUUID(), validCustomer(), visitAt,
			nil, nil, job.Completed, job.PriorityNormal, validService(),
		)
		require.NoError(t, jobErr)

		require.Error(t, j.AssignTechnician(kernel.NewUUID()))
		require.Error(t, j.Unassign())
		require.Error(t, j.Reschedule(visitAt.Add(time.Hour)))
	})
}

func TestJob_Reschedule(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, chicago)
	visitAt := time.Date(2024, time.June, 1, 9, 0, 0, 0, chicago)

	t.Run("moves the visit and the day", func(t *testing.T) {
		j, jobErr := job.NewJob(kernel.NewUUID(), validCustomer(), visitAt, job.PriorityNormal, validService(), now, chicago)
		require.NoError(t, jobErr)

		newAt := time.Date(2024, time.June, 3, 13, 0, 0, 0, chicago)
		require.NoError(t, j.Reschedule(newAt))

		assert.Equal(t, newAt, j.ScheduledAt())
		assert.Equal(t, "2024-06-03", j.Day(chicago).String())
	})

	t.Run("rejects zero time", func(t *testing.T) {
		j, jobErr := job.NewJob(kernel.NewUUID(), validCustomer(), visitAt, job.PriorityNormal, validService(), now, chicago)
		require.NoError(t, jobErr)

		require.ErrorIs(t, j.Reschedule(time.Time{}), job.ErrScheduledAtIsRequired)
	})
}

func TestJob_SortOrder(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, chicago)
	visitAt := time.Date(2024, time.June, 3, 9, 30, 0, 0, chicago)

	j, err := job.NewJob(kernel.NewUUID(), validCustomer(), visitAt, job.PriorityNormal, validService(), now, chicago)
	require.NoError(t, err)

	t.Run("set and clear", func(t *testing.T) {
		require.NoError(t, j.SetSortOrder(3))
		require.NotNil(t, j.SortOrder())
		assert.Equal(t, 3, *j.SortOrder())

		j.ClearSortOrder()
		assert.Nil(t, j.SortOrder())
	})

	t.Run("rejects negative position", func(t *testing.T) {
		require.ErrorIs(t, j.SetSortOrder(-1), job.ErrSortOrderIsNegative)
	})

	t.Run("accessor returns a copy", func(t *testing.T) {
		require.NoError(t, j.SetSortOrder(1))
		p := j.SortOrder()
		*p = 99

		assert.Equal(t, 1, *j.SortOrder())
	})
}
