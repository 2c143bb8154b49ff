// SPDX-License-Identifier: EPL-2.0

package pcmformat

import "errors"

var (
	ErrUnsupportedBits = errors.New("bit count not supported")
	ErrUnknownFormat   = errors.New("unknown PCM format")
)
