// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3. The
// decoder always produces 16-bit stereo at the stream's sample rate.
package mp3
