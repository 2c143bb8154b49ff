// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"github.com/spf13/pflag"

	"github.com/victorzappi/ar-audioengine/config"
)

// engineFlags binds the engine options to a scratch configuration. Only
// flags given on the command line are copied over the loaded one.
type engineFlags struct {
	v          config.Config
	noRealTime bool
}

func (f *engineFlags) register(fs *pflag.FlagSet) {
	f.v = config.Default()
	d := &f.v

	fs.UintVarP(&d.Frontend.Card, "frontend-card", "c", d.Frontend.Card, "virtual card holding the frontend and backend devices")
	fs.UintVarP(&d.Frontend.Device, "frontend-device", "d", d.Frontend.Device, "frontend device number")
	fs.StringVarP(&d.Backend.Name, "backend-name", "B", d.Backend.Name, "backend device name")
	fs.UintVarP(&d.Backend.Card, "backend-card", "C", d.Backend.Card, "physical card number (ALSA sink card)")
	fs.UintVarP(&d.Backend.Device, "backend-device", "D", d.Backend.Device, "physical device number (ALSA sink device)")

	fs.IntVarP(&d.Stream.PeriodSize, "period-size", "p", d.Stream.PeriodSize, "frontend period size in frames")
	fs.IntVarP(&d.Stream.PeriodCount, "period-count", "q", d.Stream.PeriodCount, "number of frontend periods")
	fs.IntVarP(&d.Stream.Channels, "channels", "n", d.Stream.Channels, "number of channels")
	fs.IntVarP(&d.Stream.Rate, "rate", "r", d.Stream.Rate, "sample rate")
	fs.IntVarP(&d.Stream.Bits, "bits", "b", d.Stream.Bits, "bits per sample")
	fs.BoolVarP(&d.Stream.Float, "float", "f", d.Stream.Float, "samples are floating-point PCM")
	fs.BoolVar(&f.noRealTime, "no-realtime", false, "keep the audio thread on default scheduling")

	fs.StringVarP(&d.Graph.Stream, "stream", "x", d.Graph.Stream, "stream key value, name or number (0 if not present)")
	fs.StringVarP(&d.Graph.StreamPP, "streampp", "y", d.Graph.StreamPP, "stream pp key value, name or number (0 if not present)")
	fs.StringVarP(&d.Graph.DevicePP, "devicepp", "w", d.Graph.DevicePP, "device pp key value, name or number (0 if not present)")
	fs.StringVarP(&d.Graph.Device, "device", "z", d.Graph.Device, "device key value, name or number (0 if not present)")
	fs.StringVarP(&d.Graph.Instance, "instance", "i", d.Graph.Instance, "instance key value, name or number (0 if not present)")

	fs.StringVar(&d.Mixer.PathsFile, "mixer-paths", d.Mixer.PathsFile, "mixer paths file of the physical card")
	fs.StringVar(&d.Mixer.Path, "mixer-path", d.Mixer.Path, "mixer path to apply")
	fs.BoolVar(&d.Mixer.Disabled, "no-mixer", d.Mixer.Disabled, "leave the physical card mixer untouched")
	fs.StringVar(&d.Backend.ConfFile, "backend-conf", d.Backend.ConfFile, "backend configuration file")

	fs.BoolVar(&d.Modules.ALSASink, "alsa-sink", d.Modules.ALSASink, "configure the ALSA sink module on the physical card")
	fs.Int32Var(&d.Modules.FrameSizeFactor, "frame-size-factor", d.Modules.FrameSizeFactor, "hardware endpoint frame size factor (0 leaves it unset)")

	fs.StringVar(&d.Renderer.Name, "renderer", d.Renderer.Name, "render callback: sine or file")
	fs.StringVar(&d.Renderer.File, "file", d.Renderer.File, "audio file for the file renderer")
	fs.BoolVar(&d.Renderer.Loop, "loop", d.Renderer.Loop, "restart the file when it ends")
	fs.Float32Var(&d.Renderer.Gain, "gain", d.Renderer.Gain, "linear gain of the file renderer")

	fs.StringVar(&d.Metrics.Addr, "metrics-addr", d.Metrics.Addr, "serve /metrics and /status on this address")
}

// apply copies every flag set on the command line into c.
func (f *engineFlags) apply(fs *pflag.FlagSet, c *config.Config) {
	v := &f.v
	setters := map[string]func(){
		"frontend-card":   func() { c.Frontend.Card = v.Frontend.Card },
		"frontend-device": func() { c.Frontend.Device = v.Frontend.Device },
		"backend-name":    func() { c.Backend.Name = v.Backend.Name },
		"backend-card":    func() { c.Backend.Card = v.Backend.Card },
		"backend-device":  func() { c.Backend.Device = v.Backend.Device },

		"period-size":  func() { c.Stream.PeriodSize = v.Stream.PeriodSize },
		"period-count": func() { c.Stream.PeriodCount = v.Stream.PeriodCount },
		"channels":     func() { c.Stream.Channels = v.Stream.Channels },
		"rate":         func() { c.Stream.Rate = v.Stream.Rate },
		"bits":         func() { c.Stream.Bits = v.Stream.Bits },
		"float":        func() { c.Stream.Float = v.Stream.Float },
		"no-realtime":  func() { c.Stream.RealTime = !f.noRealTime },

		"stream":   func() { c.Graph.Stream = v.Graph.Stream },
		"streampp": func() { c.Graph.StreamPP = v.Graph.StreamPP },
		"devicepp": func() { c.Graph.DevicePP = v.Graph.DevicePP },
		"device":   func() { c.Graph.Device = v.Graph.Device },
		"instance": func() { c.Graph.Instance = v.Graph.Instance },

		"mixer-paths":  func() { c.Mixer.PathsFile = v.Mixer.PathsFile },
		"mixer-path":   func() { c.Mixer.Path = v.Mixer.Path },
		"no-mixer":     func() { c.Mixer.Disabled = v.Mixer.Disabled },
		"backend-conf": func() { c.Backend.ConfFile = v.Backend.ConfFile },

		"alsa-sink":         func() { c.Modules.ALSASink = v.Modules.ALSASink },
		"frame-size-factor": func() { c.Modules.FrameSizeFactor = v.Modules.FrameSizeFactor },

		"renderer": func() { c.Renderer.Name = v.Renderer.Name },
		"file":     func() { c.Renderer.File = v.Renderer.File },
		"loop":     func() { c.Renderer.Loop = v.Renderer.Loop },
		"gain":     func() { c.Renderer.Gain = v.Renderer.Gain },

		"metrics-addr": func() { c.Metrics.Addr = v.Metrics.Addr },
	}

	fs.Visit(func(fl *pflag.Flag) {
		if set, ok := setters[fl.Name]; ok {
			set()
		}
	})
}
