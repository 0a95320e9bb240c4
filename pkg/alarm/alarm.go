// Package alarm provides a one-shot interval timer which raises a flag
// once the interval elapses.
// The flag is a single atomic value written by the timer goroutine and
// read without locking by the measured loop, which polls it as rarely as
// it likes. No other state is shared between the two.
package alarm

import (
	"sync"
	"sync/atomic"
	"time"
)

// An Alarm is armed on creation and rings exactly once, unless stopped
// before the interval elapses.
type Alarm struct {
	// rung is set by the timer callback.
	// Must be accessed atomically.
	rung atomic.Bool

	timer       *time.Timer
	onceStopper sync.Once
}

// Set arms a new Alarm which rings after d.
// A non-positive d rings immediately.
func Set(d time.Duration) (a *Alarm) {
	a = new(Alarm)
	if d <= 0 {
		a.rung.Store(true)
		return
	}
	a.timer = time.AfterFunc(d, a.ring)
	return
}

func (a *Alarm) ring() {
	a.rung.Store(true)
}

// Rung reports whether the interval has elapsed.
func (a *Alarm) Rung() bool {
	return a.rung.Load()
}

// Stop disarms the Alarm. A stopped Alarm that has not rung never will.
// Calling Stop again is a no-op.
func (a *Alarm) Stop() {
	a.onceStopper.Do(func() {
		if a.timer != nil {
			a.timer.Stop()
		}
	})
}
