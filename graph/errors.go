// SPDX-License-Identifier: EPL-2.0

package graph

import "errors"

var (
	// ErrSessionUnavailable means the control transport of the virtual card
	// could not be opened.
	ErrSessionUnavailable = errors.New("control session unavailable")

	// ErrInvalidState is returned for an operation the current state does not
	// allow. It does not tear the session down.
	ErrInvalidState = errors.New("operation not allowed in current state")

	ErrClosed = errors.New("session is closed")
)
