// SPDX-License-Identifier: EPL-2.0

package mixerpaths

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
)

// Kind is how a control takes its value.
type Kind int

const (
	// KindInt covers integer and boolean controls; the value is written to
	// element 0.
	KindInt Kind = iota
	KindEnum
)

// Mixer is a hardware mixer with named controls.
type Mixer interface {
	// Kind reports the control type, or false when no such control exists.
	Kind(name string) (Kind, bool)
	SetEnum(name, value string) error
	SetInt(name string, value int) error
	Close() error
}

type Option func(*Controller)

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns a hardware mixer for the lifetime of a run.
type Controller struct {
	mixer  Mixer
	paths  *Paths
	logger *log.Logger

	mtx    *sync.Mutex
	closed bool
}

// New takes ownership of m and applies the defaults.
func New(m Mixer, paths *Paths, opts ...Option) *Controller {
	c := &Controller{
		mixer:  m,
		paths:  paths,
		logger: log.New(io.Discard),
		mtx:    &sync.Mutex{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger.Debug("applying mixer defaults", "controls", len(paths.Defaults))
	for _, s := range paths.Defaults {
		c.apply(s)
	}

	return c
}

// apply writes one setting. Missing controls and rejected values are
// logged and skipped.
func (c *Controller) apply(s Setting) {
	kind, ok := c.mixer.Kind(s.Name)
	if !ok {
		c.logger.Debug("mixer control not found", "ctl", s.Name)
		return
	}

	var err error
	switch kind {
	case KindEnum:
		err = c.mixer.SetEnum(s.Name, s.Value)
	default:
		// non-numeric values write 0
		v, _ := strconv.Atoi(s.Value)
		err = c.mixer.SetInt(s.Name, v)
	}

	if err != nil {
		c.logger.Warn("mixer control rejected value", "ctl", s.Name, "value", s.Value, "err", err)
	}
}

// SetPath applies every setting of the named path.
func (c *Controller) SetPath(name string) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return ErrClosed
	}

	path, ok := c.paths.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrPathNotFound, name)
	}

	c.logger.Info("applying mixer path", "path", name, "controls", len(path.Settings))
	for _, s := range path.Settings {
		c.apply(s)
	}

	return nil
}

// Reset re-applies the defaults in reverse order and closes the mixer.
// Later calls do nothing.
func (c *Controller) Reset() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	for i := len(c.paths.Defaults) - 1; i >= 0; i-- {
		c.apply(c.paths.Defaults[i])
	}

	if err := c.mixer.Close(); err != nil {
		return fmt.Errorf("closing hardware mixer: %w", err)
	}

	return nil
}
