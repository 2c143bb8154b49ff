// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// Decoder accepts integer PCM at 8, 16, 24 or 32 bits and any channel
// count. Writer takes the raw byte frames produced by the frame converter
// (S16_LE, S24_LE, S24_3LE, S32_LE) and is what the bounce command records
// into:
//
//	f, _ := os.Create("bounce.wav")
//	w, err := wav.NewWriter(f, pcmformat.S16LE, 48000, 2)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
package wav
