// SPDX-License-Identifier: EPL-2.0

// Package stream moves rendered periods to a playback device.
//
// A Loop owns one render context and one frame converter sharing the same
// float buffer: the renderer fills it, the converter turns it into raw
// frames and zeroes it, the device receives the raw frames. Cancellation is
// cooperative and observed once per period.
package stream

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/victorzappi/ar-audioengine/frame"
	"github.com/victorzappi/ar-audioengine/render"
)

// PCM is a playback device taking one converted period per Write.
type PCM interface {
	Start() error
	Write(period []byte) error
	Stop() error
}

// Observer receives per-period timings and write failures. It is called on
// the real-time thread and must not block.
type Observer interface {
	ObservePeriod(d time.Duration)
	ObserveWriteError(err error)
}

type Option func(*Loop)

func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) { lp.logger = l }
}

func WithObserver(o Observer) Option {
	return func(lp *Loop) { lp.observer = o }
}

// WithOnStart registers fn to run once the device started and the renderer
// is set up, just before the first period.
func WithOnStart(fn func() error) Option {
	return func(lp *Loop) { lp.onStart = fn }
}

type Loop struct {
	pcm      PCM
	renderer render.Renderer
	frames   *frame.Context
	rctx     *render.Context

	logger   *log.Logger
	observer Observer
	onStart  func() error

	running atomic.Bool
	stop    atomic.Bool
	periods atomic.Uint64
}

// New binds renderer and pcm through frames. The renderer writes directly
// into frames.Input.
func New(pcm PCM, renderer render.Renderer, frames *frame.Context, sampleRate int, opts ...Option) *Loop {
	l := &Loop{
		pcm:      pcm,
		renderer: renderer,
		frames:   frames,
		rctx:     render.NewContext(frames.Input, frames.PeriodSize, frames.Channels, sampleRate),
		logger:   log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Stop asks the loop to finish after the current period. It is safe to call
// from any goroutine, including a signal handler.
func (l *Loop) Stop() { l.stop.Store(true) }

func (l *Loop) Stopping() bool { return l.stop.Load() }

// Periods is the number of periods written so far.
func (l *Loop) Periods() uint64 { return l.periods.Load() }

// Run starts the device, sets up the renderer and streams until Stop is
// called or ctx is done. Cleanup and pcm Stop always run once the device
// started. A failed write ends the loop with an error.
func (l *Loop) Run(ctx context.Context) (err error) {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer l.running.Store(false)

	if len(l.rctx.Buffer) != l.frames.Samples {
		return fmt.Errorf("%w: %d samples, converter expects %d", ErrGeometry, len(l.rctx.Buffer), l.frames.Samples)
	}

	release := context.AfterFunc(ctx, l.Stop)
	defer release()

	if err := l.pcm.Start(); err != nil {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}

	defer func() {
		if stopErr := l.pcm.Stop(); stopErr != nil {
			l.logger.Warn("pcm stop failed", "err", stopErr)
			if err == nil {
				err = fmt.Errorf("stopping pcm: %w", stopErr)
			}
		}
	}()

	defer l.renderer.Cleanup(l.rctx)

	if err := l.renderer.Setup(l.rctx); err != nil {
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}

	if l.onStart != nil {
		if err := l.onStart(); err != nil {
			return err
		}
	}

	l.logger.Info("streaming", "period", l.frames.PeriodSize, "channels", l.frames.Channels,
		"rate", l.rctx.SampleRate, "format", l.frames.Format)

	for !l.stop.Load() {
		start := time.Now()

		l.renderer.Render(l.rctx)
		out := l.frames.Convert()

		if err := l.pcm.Write(out); err != nil {
			if l.observer != nil {
				l.observer.ObserveWriteError(err)
			}
			return fmt.Errorf("%w after %d periods: %w", ErrWrite, l.periods.Load(), err)
		}

		l.periods.Add(1)
		if l.observer != nil {
			l.observer.ObservePeriod(time.Since(start))
		}
	}

	l.logger.Info("stream stopped", "periods", l.periods.Load())

	return ctx.Err()
}
