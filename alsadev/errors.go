// SPDX-License-Identifier: EPL-2.0

package alsadev

import "errors"

var (
	ErrPartialFrame = errors.New("period is not a whole number of frames")
	ErrTooLarge     = errors.New("value larger than the control")
	ErrUnsupported  = errors.New("unsupported control type")
	ErrClosed       = errors.New("device closed")
)
