// SPDX-License-Identifier: EPL-2.0

package control

import (
	"errors"
	"fmt"
)

var (
	// ErrEndpointNotFound indicates a named control does not exist.
	ErrEndpointNotFound = errors.New("control not found")

	// ErrTransport indicates the transport rejected a read or write.
	ErrTransport = errors.New("control transport failure")
)

// EndpointError ties a failure to the control it happened on.
type EndpointError struct {
	Name string
	Op   string
	Err  error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *EndpointError) Unwrap() error { return e.Err }

// NotFound builds an EndpointError for a missing control.
func NotFound(op, name string) error {
	return &EndpointError{Name: name, Op: op, Err: ErrEndpointNotFound}
}

// TransportFailure builds an EndpointError wrapping cause as a transport error.
func TransportFailure(op, name string, cause error) error {
	if cause == nil {
		cause = ErrTransport
	} else if !errors.Is(cause, ErrTransport) {
		cause = fmt.Errorf("%w: %w", ErrTransport, cause)
	}

	return &EndpointError{Name: name, Op: op, Err: cause}
}
