// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"fmt"
	"io"

	"github.com/victorzappi/ar-audioengine/frame"
	"github.com/victorzappi/ar-audioengine/render"
)

// Bounce renders periods through frames into sink without a device. It
// runs the same render and convert path as Loop and stops early when ctx
// is done. It returns the number of periods written.
func Bounce(ctx context.Context, r render.Renderer, frames *frame.Context, sampleRate, periods int, sink io.Writer) (int, error) {
	rctx := render.NewContext(frames.Input, frames.PeriodSize, frames.Channels, sampleRate)
	defer r.Cleanup(rctx)

	if err := r.Setup(rctx); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	size := frames.Samples * frames.BytesPerSample

	for n := range periods {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		r.Render(rctx)
		out := frames.Convert()

		if _, err := sink.Write(out[:size]); err != nil {
			return n, fmt.Errorf("%w: period %d: %w", ErrWrite, n, err)
		}
	}

	return periods, nil
}
