// SPDX-License-Identifier: EPL-2.0

package catalog

import "errors"

var (
	ErrEmptyValue  = errors.New("empty routing value")
	ErrUnknownName = errors.New("unknown routing name")
)
