// SPDX-License-Identifier: EPL-2.0

package tagmodule

import "errors"

var (
	// ErrTruncated indicates the table ends before its declared contents.
	ErrTruncated = errors.New("tagged module table truncated")

	// ErrTagNotFound indicates no entry carries the requested tag.
	ErrTagNotFound = errors.New("tag not found in graph")
)
