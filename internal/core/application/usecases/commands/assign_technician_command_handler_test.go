package commands_test

import (
	"errors"
	"testing"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoreTestJob(t *testing.T, technicianID *kernel.UUID) *job.Job {
	t.Helper()
	visitAt := time.Date(2024, time.June, 3, 9, 30, 0, 0, time.UTC)

	aggregate, err := job.RestoreJob(
		kernel.NewUUID(), testCustomer(), visitAt, nil, technicianID,
		job.Scheduled, job.PriorityNormal, testService())
	require.NoError(t, err)
	return aggregate
}

func TestAssignTechnicianCommandHandler_Handle_FreshAssignment(t *testing.T) {
	ctx := t.Context()
	techID := kernel.NewUUID()
	aggregate := restoreTestJob(t, nil)

	cmd, err := commands.NewAssignTechnicianCommand(aggregate.ID(), &techID)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	eventRepo := new(MockChangeEventRepository)
	uow := new(MockScheduleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		uow.On("ChangeEventRepository").Return(eventRepo).Once(),
		jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		jobRepo.On("CountForTechnicianOnDay", ctx, techID, mock.AnythingOfType("kernel.Day"), mock.AnythingOfType("*kernel.UUID")).
			Return(0, nil).
			Once(),
		eventRepo.On("Add", ctx, mock.AnythingOfType("*digest.ChangeEvent")).Return(nil).Once(),
		jobRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignTechnicianCommandHandler(factory, time.UTC)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	jobRepo.AssertExpectations(t)
	eventRepo.AssertExpectations(t)

	require.True(t, aggregate.IsAssigned())
	assert.True(t, aggregate.Technician().IsEqual(techID))

	event := eventRepo.Calls[0].Arguments[1].(*digest.ChangeEvent)
	assert.Equal(t, digest.RouteAssigned, event.Type())
}

func TestAssignTechnicianCommandHandler_Handle_Reassignment(t *testing.T) {
	ctx := t.Context()
	oldTechID := kernel.NewUUID()
	newTechID := kernel.NewUUID()
	aggregate := restoreTestJob(t, &oldTechID)

	cmd, err := commands.NewAssignTechnicianCommand(aggregate.ID(), &newTechID)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	eventRepo := new(MockChangeEventRepository)
	uow := new(MockScheduleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		uow.On("ChangeEventRepository").Return(eventRepo).Once(),
		jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		eventRepo.On("Add", ctx, mock.AnythingOfType("*digest.ChangeEvent")).Return(nil).Once(),
		jobRepo.On("CountForTechnicianOnDay", ctx, newTechID, mock.AnythingOfType("kernel.Day"), mock.AnythingOfType("*kernel.UUID")).
			Return(3, nil).
			Once(),
		eventRepo.On("Add", ctx, mock.AnythingOfType("*digest.ChangeEvent")).Return(nil).Once(),
		jobRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignTechnicianCommandHandler(factory, time.UTC)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, eventRepo.Calls, 2)

	removed := eventRepo.Calls[0].Arguments[1].(*digest.ChangeEvent)
	assert.Equal(t, digest.JobUnassigned, removed.Type())
	assert.True(t, removed.Technician().IsEqual(oldTechID))

	assigned := eventRepo.Calls[1].Arguments[1].(*digest.ChangeEvent)
	assert.Equal(t, digest.JobAssigned, assigned.Type())
	assert.True(t, assigned.Technician().IsEqual(newTechID))

	assert.True(t, aggregate.Technician().IsEqual(newTechID))
}

func TestAssignTechnicianCommandHandler_Handle_Unassign(t *testing.T) {
	ctx := t.Context()
	oldTechID := kernel.NewUUID()
	aggregate := restoreTestJob(t, &oldTechID)

	cmd, err := commands.NewAssignTechnicianCommand(aggregate.ID(), nil)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	eventRepo := new(MockChangeEventRepository)
	uow := new(MockScheduleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		uow.On("ChangeEventRepository").Return(eventRepo).Once(),
		jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		eventRepo.On("Add", ctx, mock.AnythingOfType("*digest.ChangeEvent")).Return(nil).Once(),
		jobRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignTechnicianCommandHandler(factory, time.UTC)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, aggregate.IsAssigned())

	event := eventRepo.Calls[0].Arguments[1].(*digest.ChangeEvent)
	assert.Equal(t, digest.JobUnassigned, event.Type())
	assert.True(t, event.Technician().IsEqual(oldTechID))
}

func TestAssignTechnicianCommandHandler_Handle_SameTechnicianIsNoOp(t *testing.T) {
	ctx := t.Context()
	techID := kernel.NewUUID()
	aggregate := restoreTestJob(t, &techID)

	cmd, err := commands.NewAssignTechnicianCommand(aggregate.ID(), &techID)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	eventRepo := new(MockChangeEventRepository)
	uow := new(MockScheduleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		uow.On("ChangeEventRepository").Return(eventRepo).Once(),
		jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		jobRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignTechnicianCommandHandler(factory, time.UTC)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	eventRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
	assert.True(t, aggregate.Technician().IsEqual(techID))
}

func TestAssignTechnicianCommandHandler_Handle_JobNotFound(t *testing.T) {
	ctx := t.Context()
	jobID := kernel.NewUUID()
	techID := kernel.NewUUID()

	cmd, err := commands.NewAssignTechnicianCommand(jobID, &techID)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	eventRepo := new(MockChangeEventRepository)
	uow := new(MockScheduleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		uow.On("ChangeEventRepository").Return(eventRepo).Once(),
		jobRepo.On("Get", ctx, jobID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignTechnicianCommandHandler(factory, time.UTC)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignTechnicianCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreTestJob(t, nil)
	techID := kernel.NewUUID()

	cmd, err := commands.NewAssignTechnicianCommand(aggregate.ID(), &techID)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	eventRepo := new(MockChangeEventRepository)
	uow := new(MockScheduleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		uow.On("ChangeEventRepository").Return(eventRepo).Once(),
		jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		jobRepo.On("CountForTechnicianOnDay", ctx, techID, mock.AnythingOfType("kernel.Day"), mock.AnythingOfType("*kernel.UUID")).
			Return(0, nil).
			Once(),
		eventRepo.On("Add", ctx, mock.AnythingOfType("*digest.ChangeEvent")).Return(nil).Once(),
		jobRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignTechnicianCommandHandler(factory, time.UTC)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
}
