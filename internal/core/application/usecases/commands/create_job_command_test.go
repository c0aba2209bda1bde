package commands_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateJobCommand(t *testing.T) {
	visitAt := time.Date(2024, time.June, 3, 9, 30, 0, 0, time.UTC)

	t.Run("should create command with valid params", func(t *testing.T) {
		jobID := kernel.NewUUID()
		techID := kernel.NewUUID()

		cmd, err := commands.NewCreateJobCommand(
			jobID, testCustomer(), visitAt, job.PriorityNormal, testService(), &techID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.JobID().IsEqual(jobID))
		assert.True(t, cmd.ScheduledAt().Equal(visitAt))
		require.NotNil(t, cmd.Technician())
		assert.True(t, cmd.Technician().IsEqual(techID))
	})

	t.Run("should return error with zero scheduledAt", func(t *testing.T) {
		_, err := commands.NewCreateJobCommand(
			kernel.NewUUID(), testCustomer(), time.Time{}, job.PriorityNormal, testService(), nil)

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrScheduledAtIsRequired)
	})

	t.Run("should return error with invalid customer", func(t *testing.T) {
		customer := testCustomer()
		customer.Name = ""

		_, err := commands.NewCreateJobCommand(
			kernel.NewUUID(), customer, visitAt, job.PriorityNormal, testService(), nil)

		assert.Error(t, err)
	})

	t.Run("should return error with invalid priority", func(t *testing.T) {
		_, err := commands.NewCreateJobCommand(
			kernel.NewUUID(), testCustomer(), visitAt, job.PriorityUnknown, testService(), nil)

		assert.Error(t, err)
	})

	t.Run("technician accessor returns a copy", func(t *testing.T) {
		techID := kernel.NewUUID()
		cmd, err := commands.NewCreateJobCommand(
			kernel.NewUUID(), testCustomer(), visitAt, job.PriorityNormal, testService(), &techID)
		require.NoError(t, err)

		*cmd.Technician() = kernel.NewUUID()

		assert.True(t, cmd.Technician().IsEqual(techID))
	})
}
