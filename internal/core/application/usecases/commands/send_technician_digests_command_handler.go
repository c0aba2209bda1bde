package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"
	"fieldservice/internal/core/ports"
)

// ErrNothingToDispatch is returned when a pass finds no technician to
// message: no unclaimed events for a delta pass, no assigned jobs for the
// morning pass.
var ErrNothingToDispatch = errors.New("nothing to dispatch")

// SendTechnicianDigestsCommandHandler runs one digest dispatch pass.
//
// The morning window restates every technician's full route for the day and
// touches no change events. The midday and evening windows report the
// unclaimed change events of the day, grouped per technician, and claim the
// grouped events by stamping them with the created digest, regardless of
// whether the send succeeded. A failed send therefore produces exactly one
// FAILED audit row and is never re-notified; the delivery log, not
// redelivery, is how failures surface.
//
// A failure inside one technician's group (directory lookup, send, render)
// never aborts the other groups. Only transaction-level errors abort the
// pass.
type SendTechnicianDigestsCommandHandler struct {
	uowFactory  DigestUoWFactory
	technicians ports.TechnicianDirectory
	mailer      ports.Mailer
	loc         *time.Location
}

// NewSendTechnicianDigestsCommandHandler creates a handler for digest
// dispatch passes.
func NewSendTechnicianDigestsCommandHandler(
	uowFactory DigestUoWFactory,
	technicians ports.TechnicianDirectory,
	mailer ports.Mailer,
	loc *time.Location,
) SendTechnicianDigestsCommandHandler {
	return SendTechnicianDigestsCommandHandler{
		uowFactory:  uowFactory,
		technicians: technicians,
		mailer:      mailer,
		loc:         loc,
	}
}

// Handle processes one dispatch pass for the current day in the service
// time zone.
func (h SendTechnicianDigestsCommandHandler) Handle(ctx context.Context, cmd SendTechnicianDigestsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	day := kernel.DayOf(cmd.ScheduledFor(), h.loc)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var err error
	if cmd.Window().IsDelta() {
		err = h.dispatchDeltas(ctx, uow, cmd, day)
	} else {
		err = h.dispatchFullPlans(ctx, uow, cmd, day)
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// dispatchDeltas sends one digest per technician with unclaimed events on
// the day and claims the grouped events.
func (h SendTechnicianDigestsCommandHandler) dispatchDeltas(
	ctx context.Context,
	uow DigestUoW,
	cmd SendTechnicianDigestsCommand,
	day kernel.Day,
) error {
	events, err := uow.ChangeEventRepository().GetUnclaimedForDay(ctx, day)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return ErrNothingToDispatch
	}

	for _, group := range groupByTechnician(events) {
		digestRow, digestErr := digest.NewDigest(
			kernel.NewUUID(), group.technicianID, day, cmd.Window(), cmd.ScheduledFor())
		if digestErr != nil {
			return digestErr
		}
		if err = uow.DigestRepository().Add(ctx, digestRow); err != nil {
			return err
		}

		subject := fmt.Sprintf("Route update for %s", day)
		body := renderDeltaBody(group.events, h.loc)

		if err = h.deliver(ctx, uow, digestRow, subject, body); err != nil {
			return err
		}

		// Claim regardless of the send outcome: a failed digest is audited,
		// not re-notified.
		eventIDs := make([]kernel.UUID, 0, len(group.events))
		for _, event := range group.events {
			if claimErr := event.Claim(digestRow.ID()); claimErr != nil {
				return claimErr
			}
			eventIDs = append(eventIDs, event.ID())
		}
		if err = uow.ChangeEventRepository().Claim(ctx, digestRow.ID(), eventIDs); err != nil {
			return err
		}
	}

	return nil
}

// dispatchFullPlans sends every technician with jobs on the day a
// restatement of their full route. Change events are untouched.
func (h SendTechnicianDigestsCommandHandler) dispatchFullPlans(
	ctx context.Context,
	uow DigestUoW,
	cmd SendTechnicianDigestsCommand,
	day kernel.Day,
) error {
	technicianIDs, err := uow.JobRepository().GetTechniciansForDay(ctx, day)
	if err != nil {
		return err
	}
	if len(technicianIDs) == 0 {
		return ErrNothingToDispatch
	}

	for _, technicianID := range technicianIDs {
		jobs, jobsErr := uow.JobRepository().GetAssignedForDay(ctx, technicianID, day)
		if jobsErr != nil {
			return jobsErr
		}
		if len(jobs) == 0 {
			continue
		}

		digestRow, digestErr := digest.NewDigest(
			kernel.NewUUID(), technicianID, day, cmd.Window(), cmd.ScheduledFor())
		if digestErr != nil {
			return digestErr
		}
		if err = uow.DigestRepository().Add(ctx, digestRow); err != nil {
			return err
		}

		subject := fmt.Sprintf("Your route for %s", day)
		body := renderFullPlanBody(jobs, h.loc)

		if err = h.deliver(ctx, uow, digestRow, subject, body); err != nil {
			return err
		}
	}

	return nil
}

// deliver attempts one send, finalizes the digest row, and appends the audit
// entry. Send and lookup failures are absorbed into the FAILED outcome; only
// persistence errors propagate.
func (h SendTechnicianDigestsCommandHandler) deliver(
	ctx context.Context,
	uow DigestUoW,
	digestRow *digest.Digest,
	subject, body string,
) error {
	recipient := "unknown"
	technicianID := digestRow.Technician()
	digestID := digestRow.ID()

	contact, sendErr := h.technicians.GetContact(ctx, technicianID)
	if sendErr == nil {
		recipient = contact.Email
		sendErr = h.mailer.Send(ctx, contact.Email, subject, body)
	}

	refs := notification.DeliveryRefs{TechnicianID: &technicianID, DigestID: &digestID}

	var entry *notification.DeliveryLogEntry
	var entryErr error
	now := time.Now()

	if sendErr == nil {
		if err := digestRow.MarkSent(now); err != nil {
			return err
		}
		entry, entryErr = notification.NewSentLogEntry(
			kernel.NewUUID(), recipient, notification.RecipientTechnician, subject, body, refs, now)
	} else {
		if err := digestRow.MarkFailed(); err != nil {
			return err
		}
		entry, entryErr = notification.NewFailedLogEntry(
			kernel.NewUUID(), recipient, notification.RecipientTechnician,
			subject, body, sendErr.Error(), refs, now)
	}
	if entryErr != nil {
		return entryErr
	}

	if err := uow.DeliveryLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.DigestRepository().Update(ctx, digestRow)
}

// technicianGroup is one technician's unclaimed events, oldest first.
type technicianGroup struct {
	technicianID kernel.UUID
	events       []*digest.ChangeEvent
}

// groupByTechnician buckets events per technician in first-seen order so a
// pass dispatches deterministically.
func groupByTechnician(events []*digest.ChangeEvent) []technicianGroup {
	index := make(map[kernel.UUID]int)
	groups := make([]technicianGroup, 0)

	for _, event := range events {
		i, ok := index[event.Technician()]
		if !ok {
			i = len(groups)
			index[event.Technician()] = i
			groups = append(groups, technicianGroup{technicianID: event.Technician()})
		}
		groups[i].events = append(groups[i].events, event)
	}

	return groups
}

// renderDeltaBody joins each event's digest line, one change per line.
func renderDeltaBody(events []*digest.ChangeEvent, loc *time.Location) string {
	lines := make([]string, 0, len(events))
	for _, event := range events {
		lines = append(lines, event.Line(loc))
	}
	return strings.Join(lines, "\n")
}

// renderFullPlanBody lists the technician's route in visit order.
func renderFullPlanBody(jobs []*job.Job, loc *time.Location) string {
	lines := make([]string, 0, len(jobs))
	for _, aggregate := range jobs {
		lines = append(lines, fmt.Sprintf("%s - %s - %s",
			aggregate.ScheduledAt().In(loc).Format("3:04 PM"),
			aggregate.Customer().Name,
			aggregate.Customer().Address))
	}
	return strings.Join(lines, "\n")
}
