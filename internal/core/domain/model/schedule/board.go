package schedule

import (
	"errors"
	"sort"
	"time"

	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// Domain errors for board operations.
var (
	// ErrBoardIsNotConstructed is returned when a Board was not created via NewBoard.
	ErrBoardIsNotConstructed = errors.New("Board must be created via NewBoard constructor")
	// ErrAnchorNotOnTargetDay is returned when the anchor job is not scheduled on the target day.
	ErrAnchorNotOnTargetDay = errs.NewValueIsInvalidError("anchor job is not on the target day")
	// ErrAnchorIsMovedJob is returned when a job is anchored against itself.
	ErrAnchorIsMovedJob = errs.NewValueIsInvalidError("anchor job must differ from the moved job")
)

// Position selects which side of the anchor a moved job lands on.
type Position int

const (
	// PositionBefore inserts the moved job at the anchor's index.
	PositionBefore Position = iota
	// PositionAfter inserts the moved job at the anchor's index + 1.
	PositionAfter
)

// Board is the in-memory ordering model for an interactive editing session.
// It indexes jobs by the calendar day their visit falls on and maintains the
// day ordering invariant: whenever manual positions are present for a day,
// they form a contiguous zero-based sequence with no duplicates.
//
// Every mutation is applied optimistically to the in-memory jobs AND recorded
// as a pending patch in the edit tracker; nothing touches storage until the
// operator commits the batch. On commit failure both the jobs and the tracker
// keep their proposed state so the operator can retry.
//
// Board is a single-writer, single-reader structure scoped to one session.
// Two operators editing the same day race at commit time (last commit wins);
// the board itself takes no locks.
type Board struct {
	loc     *time.Location
	jobs    map[kernel.UUID]*job.Job
	tracker *EditTracker
	guard   guard.ConstructorGuard
}

// NewBoard builds a board over the given jobs, evaluated in the service
// time zone. The jobs are typically the result of a day-range query; the
// board takes ownership of the slice's elements for the session.
func NewBoard(jobs []*job.Job, loc *time.Location) (*Board, error) {
	if loc == nil {
		return nil, errs.NewValueIsRequiredError("location")
	}

	indexed := make(map[kernel.UUID]*job.Job, len(jobs))
	for _, j := range jobs {
		if err := j.Validate(); err != nil {
			return nil, err
		}
		indexed[j.ID()] = j
	}

	return &Board{
		loc:     loc,
		jobs:    indexed,
		tracker: NewEditTracker(),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Board was properly constructed.
func (b *Board) Validate() error {
	if b == nil {
		return ErrBoardIsNotConstructed
	}
	return b.guard.Validate(ErrBoardIsNotConstructed)
}

// Tracker exposes the pending-edit tracker for commit and inspection.
func (b *Board) Tracker() *EditTracker {
	return b.tracker
}

// Job returns the board's copy of a job.
func (b *Board) Job(id kernel.UUID) (*job.Job, error) {
	j, ok := b.jobs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("jobId", id.String())
	}
	return j, nil
}

// DayJobs returns the jobs scheduled on the given day in display order:
// manual positions first (ascending), then unranked jobs in scheduled-time
// order. This ordering is what the reorder engine treats as the current
// relative order.
func (b *Board) DayJobs(day kernel.Day) []*job.Job {
	var jobs []*job.Job
	for _, j := range b.jobs {
		if j.Day(b.loc).IsEqual(day) {
			jobs = append(jobs, j)
		}
	}
	sortDayJobs(jobs)
	return jobs
}

// Move relocates a job to targetDay at the position described by the anchor.
//
// Behavior, in order:
//   - The target day's jobs (moved job excluded) are taken in display order -
//     manual positions, scheduled-time fallback for unranked jobs - and the
//     insert position is resolved: the anchor's index (before) or index+1
//     (after), or the end when no anchor is given. A rejected anchor leaves
//     the board and tracker untouched.
//   - If targetDay differs from the job's current day, the visit timestamp is
//     rewritten to the same time-of-day on targetDay.
//   - The target day with the moved job inserted is re-indexed 0..m-1, then
//     the source day's remaining jobs are re-indexed 0..n-1 in their existing
//     relative order.
//   - Only positions that actually changed are recorded as patches.
//
// When source and target day coincide, a single re-index pass runs over that
// day with the job removed and reinserted at the anchor position.
func (b *Board) Move(jobID kernel.UUID, targetDay kernel.Day, anchorID *kernel.UUID, position Position) error {
	moved, err := b.Job(jobID)
	if err != nil {
		return err
	}
	if err = targetDay.Validate(); err != nil {
		return err
	}
	if anchorID != nil && anchorID.IsEqual(jobID) {
		return ErrAnchorIsMovedJob
	}

	sourceDay := moved.Day(b.loc)
	sameDay := sourceDay.IsEqual(targetDay)

	// Target day in display order, moved job excluded. For a day where every
	// job is unranked, the time ordering below acts as the authoritative
	// positions to insert into. The insert position must resolve before any
	// mutation so a rejected anchor leaves the board and tracker untouched.
	target := b.dayJobsExcluding(targetDay, jobID)

	insertAt := len(target)
	if anchorID != nil {
		anchorIdx := indexOf(target, *anchorID)
		if anchorIdx < 0 {
			return ErrAnchorNotOnTargetDay
		}
		insertAt = anchorIdx
		if position == PositionAfter {
			insertAt = anchorIdx + 1
		}
	}

	// Day change rewrites the date but preserves the visit's time-of-day.
	if !sameDay {
		newAt := targetDay.At(moved.ScheduledAt(), b.loc)
		if err = moved.Reschedule(newAt); err != nil {
			return err
		}
		b.tracker.Record(jobID, Patch{ScheduledAt: &newAt})
	}

	target = append(target, nil)
	copy(target[insertAt+1:], target[insertAt:])
	target[insertAt] = moved

	if err = b.reindex(target); err != nil {
		return err
	}

	// Close the gap the job left behind.
	if !sameDay {
		if err = b.reindex(b.dayJobsExcluding(sourceDay, jobID)); err != nil {
			return err
		}
	}

	return nil
}

// Assign sets the job's technician and records the pending edit.
// Used for drag-to-technician actions inside an editing session; the change
// event for the reassignment is emitted at commit time.
func (b *Board) Assign(jobID, technicianID kernel.UUID) error {
	j, err := b.Job(jobID)
	if err != nil {
		return err
	}
	if err = j.AssignTechnician(technicianID); err != nil {
		return err
	}

	techID := technicianID
	b.tracker.Record(jobID, Patch{Technician: &TechnicianPatch{ID: &techID}})
	return nil
}

// Unassign clears the job's technician and records the pending edit.
func (b *Board) Unassign(jobID kernel.UUID) error {
	j, err := b.Job(jobID)
	if err != nil {
		return err
	}
	if err = j.Unassign(); err != nil {
		return err
	}

	b.tracker.Record(jobID, Patch{Technician: &TechnicianPatch{}})
	return nil
}

// DiscardEdits drops all pending edits without committing. The in-memory
// jobs keep their proposed state; callers leaving edit mode reload the board
// from storage.
func (b *Board) DiscardEdits() {
	b.tracker.Clear()
}

// reindex assigns contiguous positions 0..n-1 to the ordered day list,
// recording a patch only for jobs whose position actually changed.
func (b *Board) reindex(ordered []*job.Job) error {
	for i, j := range ordered {
		current := j.SortOrder()
		if current != nil && *current == i {
			continue
		}

		if err := j.SetSortOrder(i); err != nil {
			return err
		}
		pos := i
		b.tracker.Record(j.ID(), Patch{SortOrder: &pos})
	}
	return nil
}

// dayJobsExcluding returns the day's jobs in display order with one job
// filtered out.
func (b *Board) dayJobsExcluding(day kernel.Day, exclude kernel.UUID) []*job.Job {
	jobs := b.DayJobs(day)
	filtered := jobs[:0]
	for _, j := range jobs {
		if !j.ID().IsEqual(exclude) {
			filtered = append(filtered, j)
		}
	}
	return filtered
}

// sortDayJobs orders a day's jobs for display: ranked jobs by manual
// position, unranked jobs after them in scheduled-time order.
func sortDayJobs(jobs []*job.Job) {
	sort.SliceStable(jobs, func(a, c int) bool {
		left, right := jobs[a].SortOrder(), jobs[c].SortOrder()
		switch {
		case left != nil && right != nil:
			return *left < *right
		case left != nil:
			return true
		case right != nil:
			return false
		default:
			return jobs[a].ScheduledAt().Before(jobs[c].ScheduledAt())
		}
	})
}

// indexOf finds a job's index in an ordered list, or -1.
func indexOf(jobs []*job.Job, id kernel.UUID) int {
	for i, j := range jobs {
		if j.ID().IsEqual(id) {
			return i
		}
	}
	return -1
}
