// SPDX-License-Identifier: EPL-2.0

package file

import "errors"

var (
	ErrEmptyFile = errors.New("audio file has no samples")
)
