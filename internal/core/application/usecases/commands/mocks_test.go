package commands_test

import (
	"context"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"
	"fieldservice/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) UpdateBatch(ctx context.Context, aggregates []*job.Job) error {
	args := m.Called(ctx, aggregates)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetForDay(ctx context.Context, day kernel.Day) ([]*job.Job, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetAssignedForDay(
	ctx context.Context, technicianID kernel.UUID, day kernel.Day) ([]*job.Job, error) {
	args := m.Called(ctx, technicianID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetTechniciansForDay(ctx context.Context, day kernel.Day) ([]kernel.UUID, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockJobRepository) CountForTechnicianOnDay(
	ctx context.Context, technicianID kernel.UUID, day kernel.Day, excludeJobID *kernel.UUID) (int, error) {
	args := m.Called(ctx, technicianID, day, excludeJobID)
	return args.Int(0), args.Error(1)
}

type MockChangeEventRepository struct{ mock.Mock }

func (m *MockChangeEventRepository) Add(ctx context.Context, event *digest.ChangeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockChangeEventRepository) GetUnclaimedForDay(
	ctx context.Context, day kernel.Day) ([]*digest.ChangeEvent, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*digest.ChangeEvent), args.Error(1)
}

func (m *MockChangeEventRepository) Claim(
	ctx context.Context, digestID kernel.UUID, eventIDs []kernel.UUID) error {
	args := m.Called(ctx, digestID, eventIDs)
	return args.Error(0)
}

type MockDigestRepository struct{ mock.Mock }

func (m *MockDigestRepository) Add(ctx context.Context, aggregate *digest.Digest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDigestRepository) Update(ctx context.Context, aggregate *digest.Digest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetQueued(
	ctx context.Context, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

type MockDeliveryLogRepository struct{ mock.Mock }

func (m *MockDeliveryLogRepository) Add(ctx context.Context, entry *notification.DeliveryLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockTechnicianDirectory struct{ mock.Mock }

func (m *MockTechnicianDirectory) GetContact(
	ctx context.Context, technicianID kernel.UUID) (ports.Contact, error) {
	args := m.Called(ctx, technicianID)
	return args.Get(0).(ports.Contact), args.Error(1)
}

type MockCustomerDirectory struct{ mock.Mock }

func (m *MockCustomerDirectory) GetContact(
	ctx context.Context, customerID kernel.UUID) (ports.Contact, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(ports.Contact), args.Error(1)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type MockScheduleUoW struct{ mock.Mock }

func (m *MockScheduleUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScheduleUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScheduleUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScheduleUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockScheduleUoW) ChangeEventRepository() ports.ChangeEventRepository {
	args := m.Called()
	return args.Get(0).(ports.ChangeEventRepository)
}

func (m *MockScheduleUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockScheduleUoWFactory struct{ mock.Mock }

func (m *MockScheduleUoWFactory) Create() commands.ScheduleUoW {
	args := m.Called()
	return args.Get(0).(commands.ScheduleUoW)
}

type MockDigestUoW struct{ mock.Mock }

func (m *MockDigestUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDigestUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDigestUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDigestUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockDigestUoW) ChangeEventRepository() ports.ChangeEventRepository {
	args := m.Called()
	return args.Get(0).(ports.ChangeEventRepository)
}

func (m *MockDigestUoW) DigestRepository() ports.DigestRepository {
	args := m.Called()
	return args.Get(0).(ports.DigestRepository)
}

func (m *MockDigestUoW) DeliveryLogRepository() ports.DeliveryLogRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryLogRepository)
}

type MockDigestUoWFactory struct{ mock.Mock }

func (m *MockDigestUoWFactory) Create() commands.DigestUoW {
	args := m.Called()
	return args.Get(0).(commands.DigestUoW)
}

type MockNotificationUoW struct{ mock.Mock }

func (m *MockNotificationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockNotificationUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

func (m *MockNotificationUoW) DeliveryLogRepository() ports.DeliveryLogRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryLogRepository)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}
