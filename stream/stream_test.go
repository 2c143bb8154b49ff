// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorzappi/ar-audioengine/frame"
	"github.com/victorzappi/ar-audioengine/pcmformat"
	"github.com/victorzappi/ar-audioengine/render"
)

type fakePCM struct {
	mtx *sync.Mutex

	events   []string
	writes   [][]byte
	failAt   int
	writeErr error
	startErr error
}

func newFakePCM() *fakePCM {
	return &fakePCM{mtx: &sync.Mutex{}, failAt: -1}
}

func (p *fakePCM) record(ev string) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.events = append(p.events, ev)
}

func (p *fakePCM) Start() error {
	p.record("start")
	return p.startErr
}

func (p *fakePCM) Write(period []byte) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.failAt == len(p.writes) {
		return p.writeErr
	}

	p.writes = append(p.writes, slices.Clone(period))

	return nil
}

func (p *fakePCM) Stop() error {
	p.record("stop")
	return nil
}

type tracker struct {
	events []string
}

// constant renders a fixed value and asks the loop to stop after n periods.
func (tr *tracker) constant(l **Loop, value float32, n int, setupErr error) render.Funcs {
	count := 0

	return render.Funcs{
		SetupFunc: func(*render.Context) error {
			tr.events = append(tr.events, "setup")
			return setupErr
		},
		RenderFunc: func(ctx *render.Context) {
			for i := range ctx.Buffer {
				ctx.Buffer[i] = value
			}
			count++
			if count == n {
				(*l).Stop()
			}
		},
		CleanupFunc: func(*render.Context) {
			tr.events = append(tr.events, "cleanup")
		},
	}
}

type periodCounter struct {
	periods int
	errs    int
}

func (c *periodCounter) ObservePeriod(time.Duration) { c.periods++ }
func (c *periodCounter) ObserveWriteError(error)     { c.errs++ }

func newFrames(t *testing.T) *frame.Context {
	t.Helper()

	fc, err := frame.NewContext(pcmformat.S16LE, 16, 2, 4)
	require.NoError(t, err)

	return fc
}

func TestLoop_StreamsUntilStopped(t *testing.T) {
	t.Parallel()

	pcm := newFakePCM()
	tr := &tracker{}
	obs := &periodCounter{}

	var l *Loop
	started := 0
	l = New(pcm, tr.constant(&l, 0.5, 3, nil), newFrames(t), 48000,
		WithObserver(obs), WithOnStart(func() error { started++; return nil }))

	require.NoError(t, l.Run(context.Background()))

	assert.Equal(t, []string{"start", "stop"}, pcm.events)
	assert.Equal(t, []string{"setup", "cleanup"}, tr.events)
	assert.Equal(t, 1, started)
	assert.Equal(t, uint64(3), l.Periods())
	assert.Equal(t, 3, obs.periods)

	require.Len(t, pcm.writes, 3)
	// 0.5 * 32767 truncates to 0x3FFF
	assert.Equal(t, bytes.Repeat([]byte{0xFF, 0x3F}, 8), pcm.writes[0])
}

func TestLoop_WriteFailureRunsCleanup(t *testing.T) {
	t.Parallel()

	pcm := newFakePCM()
	pcm.failAt = 2
	pcm.writeErr = errors.New("EPIPE")
	tr := &tracker{}
	obs := &periodCounter{}

	var l *Loop
	l = New(pcm, tr.constant(&l, 0.1, 100, nil), newFrames(t), 48000, WithObserver(obs))

	err := l.Run(context.Background())
	require.ErrorIs(t, err, ErrWrite)
	require.ErrorIs(t, err, pcm.writeErr)

	assert.Equal(t, []string{"setup", "cleanup"}, tr.events)
	assert.Equal(t, []string{"start", "stop"}, pcm.events)
	assert.Equal(t, uint64(2), l.Periods())
	assert.Equal(t, 1, obs.errs)
}

func TestLoop_SetupFailure(t *testing.T) {
	t.Parallel()

	pcm := newFakePCM()
	tr := &tracker{}
	errNoFile := errors.New("no file")

	var l *Loop
	l = New(pcm, tr.constant(&l, 0, 1, errNoFile), newFrames(t), 48000)

	err := l.Run(context.Background())
	require.ErrorIs(t, err, ErrSetup)
	require.ErrorIs(t, err, errNoFile)

	assert.Equal(t, []string{"setup", "cleanup"}, tr.events)
	assert.Equal(t, []string{"start", "stop"}, pcm.events)
	assert.Empty(t, pcm.writes)
}

func TestLoop_StartFailure(t *testing.T) {
	t.Parallel()

	pcm := newFakePCM()
	pcm.startErr = errors.New("EBADFD")
	tr := &tracker{}

	var l *Loop
	l = New(pcm, tr.constant(&l, 0, 1, nil), newFrames(t), 48000)

	require.ErrorIs(t, l.Run(context.Background()), ErrStart)
	assert.Empty(t, tr.events, "renderer untouched")
	assert.Equal(t, []string{"start"}, pcm.events)
}

func TestLoop_ContextCancel(t *testing.T) {
	t.Parallel()

	pcm := newFakePCM()
	ctx, cancel := context.WithCancel(context.Background())

	r := render.Funcs{RenderFunc: func(*render.Context) { cancel() }}
	l := New(pcm, r, newFrames(t), 48000)

	err := l.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, l.Stopping())
	assert.Equal(t, []string{"start", "stop"}, pcm.events)
}

func TestLoop_GeometryMismatch(t *testing.T) {
	t.Parallel()

	fc := newFrames(t)
	l := New(newFakePCM(), render.Funcs{}, fc, 48000)
	l.rctx.Buffer = l.rctx.Buffer[:1]

	require.ErrorIs(t, l.Run(context.Background()), ErrGeometry)
}

type fakeScheduler struct {
	max    int
	maxErr error
	setErr error
	set    []int
}

func (s *fakeScheduler) MaxFIFOPriority() (int, error) { return s.max, s.maxErr }

func (s *fakeScheduler) SetFIFO(p int) error {
	s.set = append(s.set, p)
	return s.setErr
}

func TestSchedulingPolicy_Apply(t *testing.T) {
	t.Parallel()

	errPerm := errors.New("EPERM")

	tests := []struct {
		name     string
		policy   SchedulingPolicy
		applied  string
		priority int
		wantErr  error
	}{
		{"granted", SchedulingPolicy{RealTime: true, Scheduler: &fakeScheduler{max: 99}}, PolicyFIFO, 99, nil},
		{"denied", SchedulingPolicy{RealTime: true, Scheduler: &fakeScheduler{max: 99, setErr: errPerm}}, PolicyDefault, 0, errPerm},
		{"no priority range", SchedulingPolicy{RealTime: true, Scheduler: &fakeScheduler{maxErr: errPerm}}, PolicyDefault, 0, errPerm},
		{"not requested", SchedulingPolicy{Scheduler: &fakeScheduler{max: 99}}, PolicyDefault, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := tt.policy.Apply()
			assert.Equal(t, tt.applied, out.Applied)
			assert.Equal(t, tt.priority, out.Priority)
			if tt.wantErr != nil {
				require.ErrorIs(t, out.Err, tt.wantErr)
				assert.Contains(t, out.String(), "requested SCHED_FIFO")
			} else {
				require.NoError(t, out.Err)
			}
		})
	}
}

func TestRun_JoinsLoop(t *testing.T) {
	t.Parallel()

	pcm := newFakePCM()
	tr := &tracker{}
	sched := &fakeScheduler{max: 50, setErr: errors.New("EPERM")}

	var l *Loop
	l = New(pcm, tr.constant(&l, 0.25, 2, nil), newFrames(t), 48000)

	out, err := Run(context.Background(), l, SchedulingPolicy{RealTime: true, Scheduler: sched})
	require.NoError(t, err)
	assert.Equal(t, PolicyDefault, out.Applied)
	assert.Equal(t, []int{50}, sched.set)
	assert.Len(t, pcm.writes, 2)
}

func TestBounce(t *testing.T) {
	t.Parallel()

	fc := newFrames(t)
	tr := &tracker{}
	var sink bytes.Buffer

	var unused *Loop
	n, err := Bounce(context.Background(), tr.constant(&unused, -1, 100, nil), fc, 48000, 5, &sink)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5*fc.Samples*2, sink.Len())
	assert.Equal(t, []byte{0x00, 0x80}, sink.Bytes()[:2], "-1 maps to the negative full scale")
	assert.Equal(t, []string{"setup", "cleanup"}, tr.events)
}

func TestBounce_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sink bytes.Buffer
	n, err := Bounce(ctx, render.Funcs{}, newFrames(t), 48000, 5, &sink)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Zero(t, sink.Len())
}

func BenchmarkLoopPeriod(b *testing.B) {
	fc, err := frame.NewContext(pcmformat.S16LE, 16, 2, 960)
	require.NoError(b, err)

	l := New(discardPCM{}, render.Funcs{}, fc, 48000)

	b.ReportAllocs()
	for b.Loop() {
		l.renderer.Render(l.rctx)
		_ = l.pcm.Write(l.frames.Convert())
	}
}

type discardPCM struct{}

func (discardPCM) Start() error       { return nil }
func (discardPCM) Write([]byte) error { return nil }
func (discardPCM) Stop() error        { return nil }
