// SPDX-License-Identifier: EPL-2.0

package alsadev

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/alsa"

	"github.com/victorzappi/ar-audioengine/control"
	"github.com/victorzappi/ar-audioengine/mixerpaths"
)

// element is one named control of a card.
type element interface {
	Type() alsa.MixerCtlType
	NumValues() uint32
	SetEnumByString(value string) error
	SetArray(data any) error
	Array(data any) error
	SetValue(id uint, value int) error
}

// Mixer addresses the controls of one card by name. It serves the AGM
// virtual card as a control.Mixer and the physical card as a
// mixerpaths.Mixer.
type Mixer struct {
	id     uint
	lookup func(name string) (element, error)
	close  func()
	logger *log.Logger

	mtx    *sync.Mutex
	cache  map[string]element
	closed bool
}

var (
	_ control.Mixer    = (*Mixer)(nil)
	_ mixerpaths.Mixer = (*Mixer)(nil)
)

type MixerOption func(*Mixer)

func WithMixerLogger(l *log.Logger) MixerOption {
	return func(m *Mixer) { m.logger = l }
}

// OpenMixer opens the control interface of card id.
func OpenMixer(id uint, opts ...MixerOption) (*Mixer, error) {
	c, err := alsa.MixerOpen(id)
	if err != nil {
		return nil, fmt.Errorf("opening mixer of card %d: %w", id, err)
	}

	lookup := func(name string) (element, error) {
		ctl, err := c.CtlByName(name)
		if err != nil || ctl == nil {
			return nil, err
		}
		return ctl, nil
	}

	return newMixer(id, lookup, func() { c.Close() }, opts...), nil
}

func newMixer(id uint, lookup func(string) (element, error), closeFn func(), opts ...MixerOption) *Mixer {
	m := &Mixer{
		id:     id,
		lookup: lookup,
		close:  closeFn,
		logger: log.New(io.Discard),
		mtx:    &sync.Mutex{},
		cache:  make(map[string]element),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Opener opens card mixers for graph sessions.
type Opener struct {
	Logger *log.Logger
}

func (o Opener) OpenMixer(id uint) (control.Mixer, error) {
	var opts []MixerOption
	if o.Logger != nil {
		opts = append(opts, WithMixerLogger(o.Logger))
	}

	return OpenMixer(id, opts...)
}

func (m *Mixer) ctl(op, name string) (element, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.closed {
		return nil, &control.EndpointError{Name: name, Op: op, Err: ErrClosed}
	}

	if e, ok := m.cache[name]; ok {
		return e, nil
	}

	e, err := m.lookup(name)
	if err != nil || e == nil {
		return nil, control.NotFound(op, name)
	}

	m.cache[name] = e

	return e, nil
}

func (m *Mixer) SetEnum(name, value string) error {
	e, err := m.ctl("set enum", name)
	if err != nil {
		return err
	}

	if err := e.SetEnumByString(value); err != nil {
		return control.TransportFailure("set enum", name, err)
	}

	return nil
}

// SetInts writes values to an integer, boolean or enumerated control.
// Missing trailing values are written as zero.
func (m *Mixer) SetInts(name string, values []int) error {
	e, err := m.ctl("set array", name)
	if err != nil {
		return err
	}

	count := int(e.NumValues())
	if len(values) > count {
		return control.TransportFailure("set array", name,
			fmt.Errorf("%w: %d values, control holds %d", ErrTooLarge, len(values), count))
	}

	var data any
	switch e.Type() {
	case alsa.MIXER_CTL_TYPE_BOOL, alsa.MIXER_CTL_TYPE_INT, alsa.MIXER_CTL_TYPE_ENUM:
		ints := make([]int32, count)
		for i, v := range values {
			ints[i] = int32(v)
		}
		data = ints
	case alsa.MIXER_CTL_TYPE_INT64:
		longs := make([]int64, count)
		for i, v := range values {
			longs[i] = int64(v)
		}
		data = longs
	default:
		return control.TransportFailure("set array", name, fmt.Errorf("%w: %d", ErrUnsupported, e.Type()))
	}

	if err := e.SetArray(data); err != nil {
		return control.TransportFailure("set array", name, err)
	}

	return nil
}

// SetBytes writes a byte control. The blob is zero padded to the size of
// the control.
func (m *Mixer) SetBytes(name string, data []byte) error {
	e, err := m.ctl("set array", name)
	if err != nil {
		return err
	}

	if e.Type() != alsa.MIXER_CTL_TYPE_BYTE {
		return control.TransportFailure("set array", name, fmt.Errorf("%w: %d", ErrUnsupported, e.Type()))
	}

	count := int(e.NumValues())
	if len(data) > count {
		return control.TransportFailure("set array", name,
			fmt.Errorf("%w: %d bytes, control holds %d", ErrTooLarge, len(data), count))
	}

	buf := make([]byte, count)
	copy(buf, data)

	if err := e.SetArray(buf); err != nil {
		return control.TransportFailure("set array", name, err)
	}

	return nil
}

// ReadBytes copies the value of a byte control into dst and reports how
// many bytes were copied.
func (m *Mixer) ReadBytes(name string, dst []byte) (int, error) {
	e, err := m.ctl("get array", name)
	if err != nil {
		return 0, err
	}

	var buf []byte
	if err := e.Array(&buf); err != nil {
		return 0, control.TransportFailure("get array", name, err)
	}

	clear(dst)

	return copy(dst, buf), nil
}

// Kind reports how a control is written. Missing controls report false.
func (m *Mixer) Kind(name string) (mixerpaths.Kind, bool) {
	e, err := m.ctl("info", name)
	if err != nil {
		return 0, false
	}

	if e.Type() == alsa.MIXER_CTL_TYPE_ENUM {
		return mixerpaths.KindEnum, true
	}

	return mixerpaths.KindInt, true
}

// SetInt sets the first value of a control.
func (m *Mixer) SetInt(name string, value int) error {
	e, err := m.ctl("set value", name)
	if err != nil {
		return err
	}

	if err := e.SetValue(0, value); err != nil {
		return control.TransportFailure("set value", name, err)
	}

	return nil
}

func (m *Mixer) Close() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	clear(m.cache)
	m.close()
	m.logger.Debug("mixer closed", "card", m.id)

	return nil
}
