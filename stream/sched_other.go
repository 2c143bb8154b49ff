// SPDX-License-Identifier: EPL-2.0

//go:build !linux

package stream

type hostScheduler struct{}

func (hostScheduler) MaxFIFOPriority() (int, error) { return 0, ErrSchedUnsupported }

func (hostScheduler) SetFIFO(int) error { return ErrSchedUnsupported }
