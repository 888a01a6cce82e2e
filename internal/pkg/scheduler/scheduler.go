// Package scheduler runs delayed callbacks behind an interface so timed
// state transitions can be driven by a manual clock in tests.
package scheduler

import "time"

// Timer is a pending callback that can be cancelled
type Timer interface {
	// Stop cancels the callback, returning false if it already ran or was stopped
	Stop() bool
}

// Scheduler runs callbacks after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Real schedules callbacks on the runtime timer
type Real struct{}

// AfterFunc runs fn in its own goroutine once d has elapsed
func (Real) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// New returns a scheduler backed by real timers
func New() Scheduler {
	return Real{}
}
