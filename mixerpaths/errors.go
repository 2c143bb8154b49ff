// SPDX-License-Identifier: EPL-2.0

package mixerpaths

import "errors"

var (
	ErrPathNotFound = errors.New("mixer path not found")
	ErrMalformed    = errors.New("malformed mixer paths file")
	ErrClosed       = errors.New("mixer paths controller is closed")
)
