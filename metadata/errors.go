// SPDX-License-Identifier: EPL-2.0

package metadata

import "errors"

var (
	// ErrEmptyGraph indicates that every graph entry had a zero value.
	ErrEmptyGraph = errors.New("empty graph key-value list, no use case can be loaded")
)
