// time.go implements per-move time allocation: budget a twentieth of the
// remaining clock plus half the increment, clamped so the engine neither
// moves instantly nor flags.
package engine

import (
	"sync/atomic"
	"time"
)

// Deadline is a cooperative search cutoff: the driver polls Expired()
// instead of being preempted.
type Deadline struct {
	start    time.Time
	budget   time.Duration // 0 means unbounded (depth-only search)
	deadline time.Time
	stopped  atomic.Bool
}

// NewDeadline computes the thinking-time budget for one move from the
// remaining time and increment: timeLeft/20 + increment/2, clamped into
// [50ms, timeLeft-100ms].
func NewDeadline(timeLeft, increment time.Duration) *Deadline {
	target := timeLeft/20 + increment/2
	if min := 50 * time.Millisecond; target < min {
		target = min
	}
	if max := timeLeft - 100*time.Millisecond; max > 0 && target > max {
		target = max
	}
	if target < 0 {
		target = 50 * time.Millisecond
	}
	now := time.Now()
	return &Deadline{start: now, budget: target, deadline: now.Add(target)}
}

// NewUnboundedDeadline returns a deadline that never expires, used for
// `go depth N` and `go infinite` (the latter also requires an explicit UCI
// `stop`, handled by the caller polling Expired() against a cancel signal
// instead of a wall-clock budget).
func NewUnboundedDeadline() *Deadline {
	return &Deadline{}
}

// Stop forces Expired to report true immediately, for the UCI `stop`
// command against an infinite or depth-only search.
func (d *Deadline) Stop() { d.stopped.Store(true) }

// Expired reports whether the budget has been exceeded or Stop was called.
func (d *Deadline) Expired() bool {
	if d.stopped.Load() {
		return true
	}
	if d.budget == 0 {
		return false
	}
	return time.Now().After(d.deadline)
}

// MoreThanHalfSpent reports whether more than half the budget has elapsed.
// Iterative deepening will not start another ply past this point, since the
// next iteration usually costs more than all previous ones combined.
func (d *Deadline) MoreThanHalfSpent() bool {
	if d.budget == 0 {
		return false
	}
	return time.Since(d.start) > d.budget/2
}
