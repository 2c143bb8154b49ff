// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type hostScheduler struct{}

func (hostScheduler) MaxFIFOPriority() (int, error) {
	r, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MAX, unix.SCHED_FIFO, 0, 0)
	if errno != 0 {
		return 0, fmt.Errorf("sched_get_priority_max: %w", errno)
	}

	return int(r), nil
}

// SetFIFO applies to the calling thread only.
func (hostScheduler) SetFIFO(priority int) error {
	attr := &unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(priority),
	}

	if err := unix.SchedSetAttr(0, attr, 0); err != nil {
		return fmt.Errorf("sched_setattr: %w", err)
	}

	return nil
}
