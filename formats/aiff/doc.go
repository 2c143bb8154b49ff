// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff. Integer
// PCM at 8 to 32 bits is accepted; samples are delivered as float32.
package aiff
