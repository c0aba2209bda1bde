// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fieldservice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobRepoFactory provides access to the job repository within a transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// ChangeEventRepoFactory provides access to the change event repository within a transaction.
	ChangeEventRepoFactory interface {
		ChangeEventRepository() ports.ChangeEventRepository
	}

	// DigestRepoFactory provides access to the digest repository within a transaction.
	DigestRepoFactory interface {
		DigestRepository() ports.DigestRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// DeliveryLogRepoFactory provides access to the delivery log repository within a transaction.
	DeliveryLogRepoFactory interface {
		DeliveryLogRepository() ports.DeliveryLogRepository
	}

	// ScheduleUoW manages transactions for scheduling writes: job changes
	// plus the change events and customer notifications they emit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   jobRepo := uow.JobRepository()
	//   eventRepo := uow.ChangeEventRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ScheduleUoW interface {
		TxManager
		JobRepoFactory
		ChangeEventRepoFactory
		NotificationRepoFactory
	}

	// ScheduleUoWFactory creates new schedule unit of work instances.
	ScheduleUoWFactory interface {
		Create() ScheduleUoW
	}

	// DigestUoW manages transactions for digest dispatch: reading jobs and
	// unclaimed events, writing digest rows, claiming events, and appending
	// to the delivery log.
	DigestUoW interface {
		TxManager
		JobRepoFactory
		ChangeEventRepoFactory
		DigestRepoFactory
		DeliveryLogRepoFactory
	}

	// DigestUoWFactory creates new digest unit of work instances.
	DigestUoWFactory interface {
		Create() DigestUoW
	}

	// NotificationUoW manages transactions for the customer notification
	// drain: reading queued rows, resolving jobs, finalizing statuses, and
	// appending to the delivery log.
	NotificationUoW interface {
		TxManager
		JobRepoFactory
		NotificationRepoFactory
		DeliveryLogRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
