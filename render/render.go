// SPDX-License-Identifier: EPL-2.0

// Package render defines the callback contract used to produce audio one
// period at a time.
package render

// Context is what a renderer sees each period. Buffer holds
// PeriodSize*Channels interleaved samples in [-1,1]; it is zeroed before
// every Render call. Renderers must only write the buffer contents.
type Context struct {
	Buffer     []float32
	PeriodSize int
	Channels   int
	SampleRate int
}

// NewContext wraps an existing buffer.
func NewContext(buf []float32, periodSize, channels, sampleRate int) *Context {
	return &Context{
		Buffer:     buf,
		PeriodSize: periodSize,
		Channels:   channels,
		SampleRate: sampleRate,
	}
}

// Renderer produces audio. Setup runs once before the first period, Render
// once per period and Cleanup once after the last one, also when Setup fails.
type Renderer interface {
	Setup(ctx *Context) error
	Render(ctx *Context)
	Cleanup(ctx *Context)
}

// Funcs adapts plain functions to Renderer. Nil fields are no-ops.
type Funcs struct {
	SetupFunc   func(ctx *Context) error
	RenderFunc  func(ctx *Context)
	CleanupFunc func(ctx *Context)
}

func (f Funcs) Setup(ctx *Context) error {
	if f.SetupFunc == nil {
		return nil
	}

	return f.SetupFunc(ctx)
}

func (f Funcs) Render(ctx *Context) {
	if f.RenderFunc != nil {
		f.RenderFunc(ctx)
	}
}

func (f Funcs) Cleanup(ctx *Context) {
	if f.CleanupFunc != nil {
		f.CleanupFunc(ctx)
	}
}
