// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"context"
	"errors"

	"github.com/victorzappi/ar-audioengine/backendconf"
	"github.com/victorzappi/ar-audioengine/catalog"
	"github.com/victorzappi/ar-audioengine/control"
	"github.com/victorzappi/ar-audioengine/metadata"
	"github.com/victorzappi/ar-audioengine/param"
)

// Plan describes a complete session startup.
type Plan struct {
	VirtualCard uint
	Frontend    string
	Backend     string

	// Device is the backend's entry from the backend configuration file.
	Device backendconf.Device
	Graph  metadata.GraphSpec

	// SkipBackendConfig leaves the backend media config untouched.
	SkipBackendConfig bool

	// ALSASink, when set, configures the hardware endpoint module, which
	// must then be present.
	ALSASink *param.DeviceInterfaceConfig

	// FrameSizeFactor, when positive, is sent to the hardware endpoint
	// module if the graph has one.
	FrameSizeFactor int32
}

// MediaFormat is the converter output format matching the backend.
func (p Plan) MediaFormat() param.MediaFormat {
	_, bits := p.Device.MediaFormat()

	return param.MediaFormat{
		SampleRate: int32(p.Device.Rate),
		BitWidth:   int16(bits),
		Channels:   int16(p.Device.Channels),
	}
}

// Setup opens a session and brings it to Connected or ParamConfigured:
// backend config, graph, connect, then the stream's media format
// converter when present, then the optional hardware endpoint parameters.
// On failure everything acquired so far has been released.
func Setup(ctx context.Context, opener control.MixerOpener, plan Plan, opts ...Option) (*Session, error) {
	s, err := Open(ctx, opener, plan.VirtualCard, plan.Frontend, plan.Backend, opts...)
	if err != nil {
		return nil, err
	}

	steps := []func() error{
		func() error {
			if plan.SkipBackendConfig {
				return nil
			}
			return s.ConfigureBackend(ctx, plan.Device)
		},
		func() error { return s.BuildGraph(ctx, plan.Graph) },
		func() error { return s.Connect(ctx, true) },
		func() error {
			return s.ConfigureModule(ctx, catalog.TagPerStreamPerDeviceMFC, plan.MediaFormat(), Optional)
		},
		func() error {
			if plan.ALSASink == nil {
				return nil
			}
			return s.ConfigureModule(ctx, catalog.TagDeviceHWEndpointRX, *plan.ALSASink, Mandatory)
		},
		func() error {
			if plan.FrameSizeFactor <= 0 {
				return nil
			}
			f := param.FrameSizeFactor{Factor: plan.FrameSizeFactor}
			return s.ConfigureModule(ctx, catalog.TagDeviceHWEndpointRX, f, Optional)
		},
	}

	for _, step := range steps {
		if err := step(); err != nil {
			// failed steps have torn down already except for invalid-state
			// errors; Close is a no-op on a closed session
			return nil, errors.Join(err, s.Close())
		}
	}

	return s, nil
}
