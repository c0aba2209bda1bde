package schedule

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
)

// TechnicianPatch is a pending technician change for a job.
// A nil ID means "unassign".
type TechnicianPatch struct {
	ID *kernel.UUID
}

// Patch holds the pending changes for a single job. Any subset of the three
// fields may be set; nil fields are untouched. Patches are what the bulk
// commit sends to the persistence layer, so they carry only what actually
// changed.
type Patch struct {
	ScheduledAt *time.Time
	SortOrder   *int
	Technician  *TechnicianPatch
}

// IsEmpty reports whether the patch carries no changes.
func (p Patch) IsEmpty() bool {
	return p.ScheduledAt == nil && p.SortOrder == nil && p.Technician == nil
}

// merge overlays other onto p. Later fields win per field: a second drag
// overwrites the sort position but preserves an earlier technician change.
func (p Patch) merge(other Patch) Patch {
	if other.ScheduledAt != nil {
		p.ScheduledAt = other.ScheduledAt
	}
	if other.SortOrder != nil {
		p.SortOrder = other.SortOrder
	}
	if other.Technician != nil {
		p.Technician = other.Technician
	}
	return p
}

// JobPatch pairs a job identity with its accumulated pending patch.
type JobPatch struct {
	JobID kernel.UUID
	Patch Patch
}

// EditTracker accumulates per-job pending patches between reorder/assignment
// actions and the bulk commit. It is a single-writer structure scoped to one
// interactive editing session; it is not safe for concurrent use.
type EditTracker struct {
	pending map[kernel.UUID]Patch
	order   []kernel.UUID
}

// NewEditTracker creates an empty tracker.
func NewEditTracker() *EditTracker {
	return &EditTracker{
		pending: make(map[kernel.UUID]Patch),
	}
}

// Record merges a patch into any existing pending patch for the job.
// Fields set in the new patch overwrite earlier values; unset fields
// preserve them.
func (t *EditTracker) Record(jobID kernel.UUID, patch Patch) {
	if patch.IsEmpty() {
		return
	}

	existing, ok := t.pending[jobID]
	if !ok {
		t.order = append(t.order, jobID)
	}
	t.pending[jobID] = existing.merge(patch)
}

// Patches flattens the tracker into (jobID, patch) pairs in first-recorded
// order, ready for a batch update request.
func (t *EditTracker) Patches() []JobPatch {
	patches := make([]JobPatch, 0, len(t.order))
	for _, id := range t.order {
		patches = append(patches, JobPatch{JobID: id, Patch: t.pending[id]})
	}
	return patches
}

// Get returns the pending patch for a job, if any.
func (t *EditTracker) Get(jobID kernel.UUID) (Patch, bool) {
	p, ok := t.pending[jobID]
	return p, ok
}

// Len returns the number of jobs with pending edits.
func (t *EditTracker) Len() int {
	return len(t.order)
}

// HasPending reports whether any edits are waiting to be committed.
func (t *EditTracker) HasPending() bool {
	return len(t.order) > 0
}

// Clear drops all pending edits. Called after a confirmed commit, or when
// the operator discards the editing session. On commit failure the tracker
// is deliberately NOT cleared so the operator can retry without re-deriving
// positions.
func (t *EditTracker) Clear() {
	t.pending = make(map[kernel.UUID]Patch)
	t.order = nil
}
