package schedule_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chicago = func() *time.Location {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		panic(err)
	}
	return loc
}()

func makeJob(t *testing.T, at time.Time, sortOrder *int) *job.Job {
	t.Helper()

	customer := job.Customer{
		ID:      kernel.NewUUID(),
		Name:    "Dana Whitfield",
		Address: "18 Lakeshore Dr",
	}
	j, err := job.RestoreJob(
		kernel.NewUUID(), customer, at,
		sortOrder, nil, job.Pending, job.PriorityNormal,
		job.Service{Type: "pool-cleaning"},
	)
	require.NoError(t, err)
	return j
}

func dayAt(day kernel.Day, hour int) time.Time {
	return day.Start(chicago).Add(time.Duration(hour) * time.Hour)
}

func mustDay(t *testing.T, s string) kernel.Day {
	t.Helper()
	day, err := kernel.DayFromString(s)
	require.NoError(t, err)
	return day
}

// assertContiguous verifies the core ordering invariant: the day's positions
// form a permutation of 0..n-1.
func assertContiguous(t *testing.T, board *schedule.Board, day kernel.Day) {
	t.Helper()

	jobs := board.DayJobs(day)
	seen := make(map[int]bool, len(jobs))
	for _, j := range jobs {
		require.NotNil(t, j.SortOrder(), "job %s has no sort position", j.ID())
		pos := *j.SortOrder()
		require.False(t, seen[pos], "duplicate position %d on %s", pos, day)
		require.Less(t, pos, len(jobs))
		require.GreaterOrEqual(t, pos, 0)
		seen[pos] = true
	}
}

func TestBoard_Move_SameDaySwap(t *testing.T) {
	day := mustDay(t, "2024-06-01")
	job0 := makeJob(t, dayAt(day, 9), intPtr(0))
	job1 := makeJob(t, dayAt(day, 11), intPtr(1))

	board, err := schedule.NewBoard([]*job.Job{job0, job1}, chicago)
	require.NoError(t, err)

	// Move job-0 to "after" job-1: resulting order is [job-1 (0), job-0 (1)].
	anchor := job1.ID()
	require.NoError(t, board.Move(job0.ID(), day, &anchor, schedule.PositionAfter))

	ordered := board.DayJobs(day)
	require.Len(t, ordered, 2)
	assert.True(t, ordered[0].IsEqual(job1))
	assert.True(t, ordered[1].IsEqual(job0))
	assert.Equal(t, 0, *job1.SortOrder())
	assert.Equal(t, 1, *job0.SortOrder())
	assertContiguous(t, board, day)
}

func TestBoard_Move_BeforeAnchor(t *testing.T) {
	day := mustDay(t, "2024-06-01")
	a := makeJob(t, dayAt(day, 8), intPtr(0))
	b := makeJob(t, dayAt(day, 10), intPtr(1))
	c := makeJob(t, dayAt(day, 12), intPtr(2))

	board, err := schedule.NewBoard([]*job.Job{a, b, c}, chicago)
	require.NoError(t, err)

	anchor := a.ID()
	require.NoError(t, board.Move(c.ID(), day, &anchor, schedule.PositionBefore))

	ordered := board.DayJobs(day)
	assert.True(t, ordered[0].IsEqual(c))
	assert.True(t, ordered[1].IsEqual(a))
	assert.True(t, ordered[2].IsEqual(b))
	assertContiguous(t, board, day)
}

func TestBoard_Move_CrossDay(t *testing.T) {
	dayA := mustDay(t, "2024-06-01")
	dayB := mustDay(t, "2024-06-03")

	a0 := makeJob(t, dayAt(dayA, 8), intPtr(0))
	a1 := makeJob(t, dayAt(dayA, 10), intPtr(1))
	a2 := makeJob(t, dayAt(dayA, 12), intPtr(2))
	b0 := makeJob(t, dayAt(dayB, 9), intPtr(0))
	b1 := makeJob(t, dayAt(dayB, 11), intPtr(1))

	board, err := schedule.NewBoard([]*job.Job{a0, a1, a2, b0, b1}, chicago)
	require.NoError(t, err)

	// Insert before b0 so the moved job's position actually changes (1 -> 0)
	// and a position patch must be emitted alongside the schedule patch.
	anchor := b0.ID()
	require.NoError(t, board.Move(a1.ID(), dayB, &anchor, schedule.PositionBefore))

	t.Run("date changes, time-of-day preserved", func(t *testing.T) {
		assert.True(t, a1.Day(chicago).IsEqual(dayB))
		assert.Equal(t, 10, a1.ScheduledAt().In(chicago).Hour())
		assert.Equal(t, 0, a1.ScheduledAt().In(chicago).Minute())
	})

	t.Run("target day order and positions", func(t *testing.T) {
		ordered := board.DayJobs(dayB)
		require.Len(t, ordered, 3)
		assert.True(t, ordered[0].IsEqual(a1))
		assert.True(t, ordered[1].IsEqual(b0))
		assert.True(t, ordered[2].IsEqual(b1))
		assertContiguous(t, board, dayB)
	})

	t.Run("source day closes the gap", func(t *testing.T) {
		ordered := board.DayJobs(dayA)
		require.Len(t, ordered, 2)
		assert.True(t, ordered[0].IsEqual(a0))
		assert.True(t, ordered[1].IsEqual(a2))
		assert.Equal(t, 0, *a0.SortOrder())
		assert.Equal(t, 1, *a2.SortOrder())
	})

	t.Run("pending patches cover schedule and positions", func(t *testing.T) {
		patch, ok := board.Tracker().Get(a1.ID())
		require.True(t, ok)
		require.NotNil(t, patch.ScheduledAt)
		require.NotNil(t, patch.SortOrder)
		assert.Equal(t, 0, *patch.SortOrder)
	})
}

func TestBoard_Move_RoundTripRestoresOrder(t *testing.T) {
	dayA := mustDay(t, "2024-06-01")
	dayB := mustDay(t, "2024-06-02")

	a0 := makeJob(t, dayAt(dayA, 8), intPtr(0))
	moved := makeJob(t, dayAt(dayA, 10), intPtr(1))
	a2 := makeJob(t, dayAt(dayA, 12), intPtr(2))

	board, err := schedule.NewBoard([]*job.Job{a0, moved, a2}, chicago)
	require.NoError(t, err)

	// Away and back with the same anchor: position relative to the original
	// neighbors must be restored.
	require.NoError(t, board.Move(moved.ID(), dayB, nil, schedule.PositionAfter))

	anchor := a0.ID()
	require.NoError(t, board.Move(moved.ID(), dayA, &anchor, schedule.PositionAfter))

	ordered := board.DayJobs(dayA)
	require.Len(t, ordered, 3)
	assert.True(t, ordered[0].IsEqual(a0))
	assert.True(t, ordered[1].IsEqual(moved))
	assert.True(t, ordered[2].IsEqual(a2))
	assertContiguous(t, board, dayA)
}

func TestBoard_Move_NoAnchorAppends(t *testing.T) {
	dayA := mustDay(t, "2024-06-01")
	dayB := mustDay(t, "2024-06-02")

	moved := makeJob(t, dayAt(dayA, 9), intPtr(0))
	b0 := makeJob(t, dayAt(dayB, 8), intPtr(0))
	b1 := makeJob(t, dayAt(dayB, 10), intPtr(1))

	board, err := schedule.NewBoard([]*job.Job{moved, b0, b1}, chicago)
	require.NoError(t, err)

	require.NoError(t, board.Move(moved.ID(), dayB, nil, schedule.PositionAfter))

	ordered := board.DayJobs(dayB)
	require.Len(t, ordered, 3)
	assert.True(t, ordered[2].IsEqual(moved))
	assert.Equal(t, 2, *moved.SortOrder())
}

func TestBoard_Move_OntoUnrankedDay(t *testing.T) {
	dayA := mustDay(t, "2024-06-01")
	dayB := mustDay(t, "2024-06-02")

	moved := makeJob(t, dayAt(dayA, 9), intPtr(0))
	// Every job on day B lacks a manual position: their scheduled-time order
	// is treated as authoritative positions before inserting.
	early := makeJob(t, dayAt(dayB, 8), nil)
	late := makeJob(t, dayAt(dayB, 15), nil)

	board, err := schedule.NewBoard([]*job.Job{moved, early, late}, chicago)
	require.NoError(t, err)

	anchor := late.ID()
	require.NoError(t, board.Move(moved.ID(), dayB, &anchor, schedule.PositionBefore))

	ordered := board.DayJobs(dayB)
	require.Len(t, ordered, 3)
	assert.True(t, ordered[0].IsEqual(early))
	assert.True(t, ordered[1].IsEqual(moved))
	assert.True(t, ordered[2].IsEqual(late))
	assertContiguous(t, board, dayB)
}

func TestBoard_Move_EmitsMinimalPatches(t *testing.T) {
	day := mustDay(t, "2024-06-01")
	a := makeJob(t, dayAt(day, 8), intPtr(0))
	b := makeJob(t, dayAt(day, 10), intPtr(1))
	c := makeJob(t, dayAt(day, 12), intPtr(2))

	board, err := schedule.NewBoard([]*job.Job{a, b, c}, chicago)
	require.NoError(t, err)

	// Swap the last two: job a keeps position 0 and must not be patched.
	anchor := b.ID()
	require.NoError(t, board.Move(c.ID(), day, &anchor, schedule.PositionBefore))

	assert.Equal(t, 2, board.Tracker().Len())

	_, ok := board.Tracker().Get(a.ID())
	assert.False(t, ok, "unchanged job must not be patched")
}

func TestBoard_Move_Errors(t *testing.T) {
	dayA := mustDay(t, "2024-06-01")
	dayB := mustDay(t, "2024-06-02")

	a := makeJob(t, dayAt(dayA, 8), intPtr(0))
	b := makeJob(t, dayAt(dayB, 9), intPtr(0))

	board, err := schedule.NewBoard([]*job.Job{a, b}, chicago)
	require.NoError(t, err)

	t.Run("unknown job", func(t *testing.T) {
		err := board.Move(kernel.NewUUID(), dayA, nil, schedule.PositionAfter)
		require.Error(t, err)
	})

	t.Run("anchor on another day", func(t *testing.T) {
		anchor := b.ID()
		err := board.Move(a.ID(), dayA, &anchor, schedule.PositionAfter)
		require.ErrorIs(t, err, schedule.ErrAnchorNotOnTargetDay)
	})

	t.Run("job anchored against itself", func(t *testing.T) {
		anchor := a.ID()
		err := board.Move(a.ID(), dayA, &anchor, schedule.PositionBefore)
		require.ErrorIs(t, err, schedule.ErrAnchorIsMovedJob)
	})
}

func TestBoard_Move_RejectedAnchorLeavesBoardUntouched(t *testing.T) {
	dayA := mustDay(t, "2024-06-01")
	dayB := mustDay(t, "2024-06-03")

	a0 := makeJob(t, dayAt(dayA, 8), intPtr(0))
	a1 := makeJob(t, dayAt(dayA, 10), intPtr(1))
	b0 := makeJob(t, dayAt(dayB, 9), intPtr(0))

	board, err := schedule.NewBoard([]*job.Job{a0, a1, b0}, chicago)
	require.NoError(t, err)

	// Anchor lives on the source day, not the target: the move is rejected
	// before any state changes.
	anchor := a0.ID()
	err = board.Move(a1.ID(), dayB, &anchor, schedule.PositionAfter)
	require.ErrorIs(t, err, schedule.ErrAnchorNotOnTargetDay)

	assert.True(t, a1.Day(chicago).IsEqual(dayA), "job must stay on its source day")
	assert.Equal(t, 1, *a1.SortOrder())
	assert.Equal(t, 0, *b0.SortOrder())
	assert.False(t, board.Tracker().HasPending(), "rejected move must not leave pending edits")

	ordered := board.DayJobs(dayA)
	require.Len(t, ordered, 2)
	assert.True(t, ordered[0].IsEqual(a0))
	assert.True(t, ordered[1].IsEqual(a1))
}

func TestBoard_AssignAndUnassign(t *testing.T) {
	day := mustDay(t, "2024-06-01")
	j := makeJob(t, dayAt(day, 9), intPtr(0))
	techID := kernel.NewUUID()

	board, err := schedule.NewBoard([]*job.Job{j}, chicago)
	require.NoError(t, err)

	t.Run("assign records a technician patch", func(t *testing.T) {
		require.NoError(t, board.Assign(j.ID(), techID))

		require.NotNil(t, j.Technician())
		patch, ok := board.Tracker().Get(j.ID())
		require.True(t, ok)
		require.NotNil(t, patch.Technician)
		require.NotNil(t, patch.Technician.ID)
		assert.True(t, patch.Technician.ID.IsEqual(techID))
	})

	t.Run("a later drag preserves the assignment edit", func(t *testing.T) {
		require.NoError(t, board.Move(j.ID(), day, nil, schedule.PositionAfter))

		patch, ok := board.Tracker().Get(j.ID())
		require.True(t, ok)
		assert.NotNil(t, patch.Technician)
	})

	t.Run("unassign records a nil-ID technician patch", func(t *testing.T) {
		require.NoError(t, board.Unassign(j.ID()))

		assert.Nil(t, j.Technician())
		patch, ok := board.Tracker().Get(j.ID())
		require.True(t, ok)
		require.NotNil(t, patch.Technician)
		assert.Nil(t, patch.Technician.ID)
	})
}

func TestBoard_PermutationAfterManyMoves(t *testing.T) {
	dayA := mustDay(t, "2024-06-01")
	dayB := mustDay(t, "2024-06-02")

	jobs := []*job.Job{
		makeJob(t, dayAt(dayA, 8), intPtr(0)),
		makeJob(t, dayAt(dayA, 9), intPtr(1)),
		makeJob(t, dayAt(dayA, 10), intPtr(2)),
		makeJob(t, dayAt(dayA, 11), intPtr(3)),
		makeJob(t, dayAt(dayB, 9), nil),
		makeJob(t, dayAt(dayB, 13), nil),
	}

	board, err := schedule.NewBoard(jobs, chicago)
	require.NoError(t, err)

	require.NoError(t, board.Move(jobs[0].ID(), dayB, nil, schedule.PositionAfter))

	anchor := jobs[2].ID()
	require.NoError(t, board.Move(jobs[3].ID(), dayA, &anchor, schedule.PositionBefore))

	anchor2 := jobs[4].ID()
	require.NoError(t, board.Move(jobs[1].ID(), dayB, &anchor2, schedule.PositionAfter))

	assertContiguous(t, board, dayA)
	assertContiguous(t, board, dayB)
}

func TestBoard_DiscardEdits(t *testing.T) {
	day := mustDay(t, "2024-06-01")
	a := makeJob(t, dayAt(day, 8), intPtr(0))
	b := makeJob(t, dayAt(day, 10), intPtr(1))

	board, err := schedule.NewBoard([]*job.Job{a, b}, chicago)
	require.NoError(t, err)

	anchor := b.ID()
	require.NoError(t, board.Move(a.ID(), day, &anchor, schedule.PositionAfter))
	require.True(t, board.Tracker().HasPending())

	board.DiscardEdits()

	assert.False(t, board.Tracker().HasPending())
}
