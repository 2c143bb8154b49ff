// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/victorzappi/ar-audioengine/backendconf"
	"github.com/victorzappi/ar-audioengine/config"
	"github.com/victorzappi/ar-audioengine/formats"
	"github.com/victorzappi/ar-audioengine/frame"
	"github.com/victorzappi/ar-audioengine/graph"
	"github.com/victorzappi/ar-audioengine/param"
	"github.com/victorzappi/ar-audioengine/render"
	"github.com/victorzappi/ar-audioengine/render/file"
	"github.com/victorzappi/ar-audioengine/render/sine"
)

// backendDevice reads the backend's media format from the backend
// configuration file. A backend without an entry is an error.
func backendDevice(cfg config.Config) (backendconf.Device, error) {
	bc, err := backendconf.Load(cfg.Backend.ConfFile)
	if err != nil {
		return backendconf.Device{}, err
	}

	return bc.Find(cfg.Backend.Name)
}

// graphPlan turns the configuration and the backend entry into a session
// plan.
func graphPlan(cfg config.Config, dev backendconf.Device) (graph.Plan, error) {
	g, err := cfg.Graph.Spec()
	if err != nil {
		return graph.Plan{}, fmt.Errorf("graph: %w", err)
	}

	plan := graph.Plan{
		VirtualCard:     cfg.Frontend.Card,
		Frontend:        cfg.FrontendName(),
		Backend:         cfg.Backend.Name,
		Device:          dev,
		Graph:           g,
		FrameSizeFactor: cfg.Modules.FrameSizeFactor,
	}

	if cfg.Modules.ALSASink {
		plan.ALSASink = &param.DeviceInterfaceConfig{
			CardID:      int32(cfg.Backend.Card),
			DeviceID:    int32(cfg.Backend.Device),
			PeriodCount: int32(cfg.Stream.PeriodCount),
		}
	}

	return plan, nil
}

// frameContext sizes the converter for the frontend stream.
func frameContext(s config.Stream) (*frame.Context, error) {
	f, err := s.Format()
	if err != nil {
		return nil, err
	}

	bits := s.Bits
	if s.Float {
		bits = 0
	}

	return frame.NewContext(f, bits, s.Channels, s.PeriodSize)
}

func newRenderer(r config.Renderer, logger *log.Logger) render.Renderer {
	if r.Name == "file" {
		return file.New(r.File, formats.Registry(),
			file.WithLoop(r.Loop),
			file.WithGain(r.Gain),
			file.WithLogger(logger),
		)
	}

	return sine.New()
}
