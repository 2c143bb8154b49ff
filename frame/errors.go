// SPDX-License-Identifier: EPL-2.0

package frame

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported sample format")
	ErrInvalidBits       = errors.New("bit count does not fit the sample format")
	ErrInvalidGeometry   = errors.New("invalid period geometry")
)
