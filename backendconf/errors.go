// SPDX-License-Identifier: EPL-2.0

package backendconf

import "errors"

var (
	ErrNotFound  = errors.New("backend entry not found")
	ErrMalformed = errors.New("malformed backend configuration")
)
