// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"fmt"
	"runtime"
)

// Scheduler changes the scheduling class of the calling OS thread.
type Scheduler interface {
	MaxFIFOPriority() (int, error)
	SetFIFO(priority int) error
}

// SchedOutcome reports what was asked for and what the thread ended up
// with. Err is the reason for a fallback, if any.
type SchedOutcome struct {
	Requested string
	Applied   string
	Priority  int
	Err       error
}

func (o SchedOutcome) RealTime() bool { return o.Applied == PolicyFIFO }

func (o SchedOutcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("requested %s, running %s: %v", o.Requested, o.Applied, o.Err)
	}

	if o.RealTime() {
		return fmt.Sprintf("%s priority %d", o.Applied, o.Priority)
	}

	return o.Applied
}

const (
	PolicyFIFO    = "SCHED_FIFO"
	PolicyDefault = "SCHED_OTHER"
)

// SchedulingPolicy requests SCHED_FIFO at the highest priority when
// RealTime is set and falls back to the default class otherwise.
type SchedulingPolicy struct {
	RealTime  bool
	Scheduler Scheduler
}

// DefaultPolicy asks for real-time scheduling through the host scheduler.
func DefaultPolicy() SchedulingPolicy {
	return SchedulingPolicy{RealTime: true, Scheduler: hostScheduler{}}
}

// Apply must run on the thread to be changed.
func (p SchedulingPolicy) Apply() SchedOutcome {
	if !p.RealTime {
		return SchedOutcome{Requested: PolicyDefault, Applied: PolicyDefault}
	}

	out := SchedOutcome{Requested: PolicyFIFO, Applied: PolicyDefault}

	s := p.Scheduler
	if s == nil {
		s = hostScheduler{}
	}

	prio, err := s.MaxFIFOPriority()
	if err != nil {
		out.Err = err
		return out
	}

	if err := s.SetFIFO(prio); err != nil {
		out.Err = err
		return out
	}

	out.Applied = PolicyFIFO
	out.Priority = prio

	return out
}

// Run executes l on a dedicated goroutine locked to its OS thread, with the
// scheduling class set by policy, and waits for it to finish. A thread
// promoted to real-time is not handed back to the runtime.
func Run(ctx context.Context, l *Loop, policy SchedulingPolicy) (SchedOutcome, error) {
	type result struct {
		sched SchedOutcome
		err   error
	}

	done := make(chan result, 1)

	go func() {
		runtime.LockOSThread()

		sched := policy.Apply()
		if sched.RealTime() || sched.Err == nil {
			l.logger.Info("audio thread scheduling", "policy", sched.Applied, "priority", sched.Priority)
		} else {
			l.logger.Warn("real-time scheduling unavailable, using default", "err", sched.Err)
		}

		err := l.Run(ctx)
		if !sched.RealTime() {
			runtime.UnlockOSThread()
		}

		done <- result{sched: sched, err: err}
	}()

	r := <-done

	return r.sched, r.err
}
