// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	ErrStart   = errors.New("starting pcm")
	ErrSetup   = errors.New("renderer setup")
	ErrWrite   = errors.New("pcm write")
	ErrRunning = errors.New("loop already running")

	// ErrGeometry means the renderer buffer and the frame converter disagree.
	ErrGeometry = errors.New("period geometry mismatch")

	// ErrSchedUnsupported is reported when real-time scheduling cannot be
	// requested on this platform.
	ErrSchedUnsupported = errors.New("real-time scheduling not supported")
)
