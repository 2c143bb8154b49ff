// SPDX-License-Identifier: EPL-2.0

// Package graph drives the lifecycle of an audio graph through the AGM
// virtual mixer: open the control session, configure the backend, build and
// connect the graph, configure modules, and tear it all down again.
//
// Any failing operation tears the session down in reverse order and
// returns a single error; the session then reports Closed.
package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/victorzappi/ar-audioengine/backendconf"
	"github.com/victorzappi/ar-audioengine/catalog"
	"github.com/victorzappi/ar-audioengine/control"
	"github.com/victorzappi/ar-audioengine/metadata"
	"github.com/victorzappi/ar-audioengine/param"
	"github.com/victorzappi/ar-audioengine/tagmodule"
)

const (
	// FullGraph is the stream control value announcing a complete graph
	// description rather than a per-device update.
	FullGraph = "ZERO"

	// AGMDataFormatFixedPoint is the encoding value of the backend media
	// config.
	AGMDataFormatFixedPoint = 1
)

// Observer is told about every control operation a session performs.
type Observer interface {
	ObserveOp(op string, err error)
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// MediaFormat is what the backend was configured with.
type MediaFormat struct {
	Rate     int
	Channels int
	Bits     int
}

// Session is one frontend to backend connection.
type Session struct {
	id       uuid.UUID
	card     uint
	frontend string
	backend  string

	mixer    control.Mixer
	resolver *tagmodule.Resolver
	logger   *log.Logger
	observer Observer

	mtx       *sync.Mutex
	state     State
	connected bool
	media     MediaFormat
}

// Open acquires the control session of virtualCard.
func Open(ctx context.Context, opener control.MixerOpener, virtualCard uint, frontend, backend string, opts ...Option) (*Session, error) {
	s := &Session{
		id:       uuid.New(),
		card:     virtualCard,
		frontend: frontend,
		backend:  backend,
		logger:   log.New(io.Discard),
		mtx:      &sync.Mutex{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With("session", s.id.String()[:8])

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := opener.OpenMixer(virtualCard)
	s.observe("open", err)
	if err != nil {
		return nil, fmt.Errorf("%w: card %d: %w", ErrSessionUnavailable, virtualCard, err)
	}

	s.mixer = m
	s.resolver = &tagmodule.Resolver{Mixer: m, Logger: s.logger}
	s.state = SessionOpen
	s.logger.Info("session open", "card", virtualCard, "frontend", frontend, "backend", backend)

	return s, nil
}

func (s *Session) ID() uuid.UUID      { return s.id }
func (s *Session) Frontend() string   { return s.frontend }
func (s *Session) Backend() string    { return s.backend }
func (s *Session) Media() MediaFormat { return s.media }

func (s *Session) State() State {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.state
}

func (s *Session) observe(op string, err error) {
	if s.observer != nil {
		s.observer.ObserveOp(op, err)
	}
}

func (s *Session) transition(next State) {
	if next == s.state {
		return
	}

	s.logger.Debug("state", "from", s.state, "to", next)
	s.state = next
}

// step runs fn when the session is in one of the allowed states. fn
// returns the state to move to. A failure tears the session down.
func (s *Session) step(ctx context.Context, op string, allowed []State, fn func() (State, error)) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.state == Closed {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}

	if !slices.Contains(allowed, s.state) {
		return fmt.Errorf("%s in state %s: %w", op, s.state, ErrInvalidState)
	}

	next, err := s.state, ctx.Err()
	if err == nil {
		next, err = fn()
		s.observe(op, err)
	}

	if err != nil {
		s.logger.Error("operation failed, tearing down", "op", op, "state", s.state, "err", err)
		return errors.Join(fmt.Errorf("%s: %w", op, err), s.teardown())
	}

	s.transition(next)

	return nil
}

// ConfigureBackend pushes the device's rate, channels, format and the
// fixed-point encoding to the backend's media config control. An explicit
// format in dev wins over its bit depth.
func (s *Session) ConfigureBackend(ctx context.Context, dev backendconf.Device) error {
	return s.step(ctx, "configure backend", []State{SessionOpen}, func() (State, error) {
		format, bits := dev.MediaFormat()

		name := control.Endpoint(s.backend, control.MediaConfig)
		values := []int{dev.Rate, dev.Channels, int(format), AGMDataFormatFixedPoint}

		if err := s.mixer.SetInts(name, values); err != nil {
			return s.state, err
		}

		s.media = MediaFormat{Rate: dev.Rate, Channels: dev.Channels, Bits: bits}
		s.logger.Info("backend configured", "ctl", name, "rate", dev.Rate, "channels", dev.Channels, "format", format, "bits", bits)

		return BackendConfigured, nil
	})
}

// BuildGraph announces a full graph and sends its metadata. An empty spec
// fails before anything is written.
func (s *Session) BuildGraph(ctx context.Context, g metadata.GraphSpec) error {
	return s.step(ctx, "build graph", []State{SessionOpen, BackendConfigured}, func() (State, error) {
		blob, err := metadata.EncodeGraph(g)
		if err != nil {
			return s.state, err
		}

		if err := s.mixer.SetEnum(control.Endpoint(s.frontend, control.Control), FullGraph); err != nil {
			return s.state, err
		}

		name := control.Endpoint(s.frontend, control.Metadata)
		if err := s.mixer.SetBytes(name, blob); err != nil {
			return s.state, err
		}

		s.logger.Info("graph built", "ctl", name, "kvs", g.String(), "bytes", len(blob))

		return GraphBuilt, nil
	})
}

// metadataStates are the states in which metadata updates are accepted.
var metadataStates = []State{SessionOpen, BackendConfigured, GraphBuilt, Connected, ParamConfigured}

// SetDeviceMetadata sends one device key value plus calibration to the
// backend's metadata control.
func (s *Session) SetDeviceMetadata(ctx context.Context, kv metadata.KeyValue, calib metadata.CalibrationSet) error {
	return s.step(ctx, "set device metadata", metadataStates, func() (State, error) {
		name := control.Endpoint(s.backend, control.Metadata)
		if err := s.mixer.SetBytes(name, metadata.Encode([]metadata.KeyValue{kv}, calib, nil)); err != nil {
			return s.state, err
		}

		s.logger.Info("device metadata set", "ctl", name, "kv", kv, "calibration", len(calib))

		return s.state, nil
	})
}

// SetStreamDeviceMetadata selects the backend as the stream context and
// sends the stream-device metadata to the frontend.
func (s *Session) SetStreamDeviceMetadata(ctx context.Context, kvs []metadata.KeyValue, calib metadata.CalibrationSet) error {
	return s.step(ctx, "set stream-device metadata", metadataStates, func() (State, error) {
		if err := s.mixer.SetEnum(control.Endpoint(s.frontend, control.Control), s.backend); err != nil {
			return s.state, err
		}

		name := control.Endpoint(s.frontend, control.Metadata)
		if err := s.mixer.SetBytes(name, metadata.Encode(kvs, calib, nil)); err != nil {
			return s.state, err
		}

		s.logger.Info("stream-device metadata set", "ctl", name, "kvs", len(kvs), "calibration", len(calib))

		return s.state, nil
	})
}

func (s *Session) writeConnect(connect bool) error {
	suffix := control.Disconnect
	if connect {
		suffix = control.Connect
	}

	name := control.Endpoint(s.frontend, suffix)
	if err := s.mixer.SetEnum(name, s.backend); err != nil {
		return err
	}

	s.connected = connect
	s.logger.Info(suffix, "ctl", name, "backend", s.backend)

	return nil
}

// Connect attaches (true) or detaches (false) the backend.
func (s *Session) Connect(ctx context.Context, connect bool) error {
	if connect {
		return s.step(ctx, "connect", []State{GraphBuilt}, func() (State, error) {
			return Connected, s.writeConnect(true)
		})
	}

	return s.step(ctx, "disconnect", []State{Connected, ParamConfigured, Streaming}, func() (State, error) {
		return Disconnected, s.writeConnect(false)
	})
}

// ConfigureModule resolves the module carrying tag and sends it the
// parameter built by b. Under the Optional policy a module absent from the
// graph is logged and skipped.
func (s *Session) ConfigureModule(ctx context.Context, tag uint32, b param.Builder, policy Policy) error {
	tagName := catalog.Tags.NameOf(tag)

	return s.step(ctx, "configure "+tagName, []State{Connected, ParamConfigured}, func() (State, error) {
		miid, err := s.resolver.Resolve(ctx, s.frontend, s.backend, tag)
		if err != nil {
			absent := errors.Is(err, tagmodule.ErrTagNotFound) || errors.Is(err, control.ErrEndpointNotFound)
			if absent && policy == Optional {
				s.logger.Info("module not present in graph, skipping", "tag", tagName)
				return s.state, nil
			}

			return s.state, err
		}

		p := b.Build(miid)
		h := p.Header()

		name := control.Endpoint(s.frontend, control.SetParam)
		if err := s.mixer.SetBytes(name, p.Bytes()); err != nil {
			return s.state, err
		}

		s.logger.Info("module configured", "tag", tagName, "miid", fmt.Sprintf("0x%X", miid),
			"param", fmt.Sprintf("0x%X", h.ParamID), "size", h.ParamSize, "padding", p.Padding(), "value", b)

		return ParamConfigured, nil
	})
}

// MarkStreaming records that audio started flowing.
func (s *Session) MarkStreaming() error {
	return s.step(context.Background(), "start streaming", []State{Connected, ParamConfigured}, func() (State, error) {
		return Streaming, nil
	})
}

// Close detaches the backend and releases the control session, whatever
// state the session reached. It is safe to call more than once.
func (s *Session) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.teardown()
}

// teardown writes the disconnect while the control session is open. A
// failed disconnect is only reported when the backend was connected.
func (s *Session) teardown() error {
	if s.state == Closed {
		return nil
	}

	var errs []error

	if s.mixer != nil {
		wasConnected := s.connected

		err := s.writeConnect(false)
		s.observe("disconnect", err)

		switch {
		case err != nil && wasConnected:
			errs = append(errs, fmt.Errorf("disconnect: %w", err))
		case err != nil:
			s.logger.Warn("disconnect failed", "state", s.state, "err", err)
		case wasConnected:
			s.transition(Disconnected)
		}

		if err := s.mixer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close control session: %w", err))
		}
	}

	s.transition(Closed)
	s.logger.Info("session closed")

	return errors.Join(errs...)
}
