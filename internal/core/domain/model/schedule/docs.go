// Package schedule implements the in-memory ordering model for interactive
// route editing: a day-indexed board of jobs, the reorder engine that keeps
// each day's manual positions contiguous, and the pending-edit tracker that
// accumulates per-job patches until the operator commits them as one batch.
//
// The model is deliberately optimistic: every drag or assignment mutates the
// board immediately and records a diff, while storage is only touched by the
// bulk commit. A failed commit loses nothing - the proposed state and the
// tracked patches both survive for retry.
package schedule
