// SPDX-License-Identifier: EPL-2.0

// Package config holds the engine settings: built-in defaults, an optional
// TOML file on top of them and a few environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/victorzappi/ar-audioengine/catalog"
	"github.com/victorzappi/ar-audioengine/control"
	"github.com/victorzappi/ar-audioengine/metadata"
	"github.com/victorzappi/ar-audioengine/param"
	"github.com/victorzappi/ar-audioengine/pcmformat"
)

const (
	DefaultMixerPaths  = "/etc/mixer_paths_qcs6490_rb3gen2.xml"
	DefaultMixerPath   = "speaker"
	DefaultBackendConf = "/etc/backend_conf.xml"
	DefaultBackend     = "CODEC_DMA-LPAIF_WSA-RX-0"
)

type Frontend struct {
	Card   uint `toml:"card"`
	Device uint `toml:"device"`
}

type Backend struct {
	Name     string `toml:"name"`
	Card     uint   `toml:"card"`
	Device   uint   `toml:"device"`
	ConfFile string `toml:"conf_file"`
}

type Stream struct {
	PeriodSize  int  `toml:"period_size"`
	PeriodCount int  `toml:"period_count"`
	Channels    int  `toml:"channels"`
	Rate        int  `toml:"rate"`
	Bits        int  `toml:"bits"`
	Float       bool `toml:"float"`
	RealTime    bool `toml:"realtime"`
}

// Graph values are routing names or numbers. Empty or "0" leaves a key out.
type Graph struct {
	Stream   string `toml:"stream"`
	StreamPP string `toml:"streampp"`
	DevicePP string `toml:"devicepp"`
	Device   string `toml:"device"`
	Instance string `toml:"instance"`
}

type Mixer struct {
	PathsFile string `toml:"paths_file"`
	Path      string `toml:"path"`
	Disabled  bool   `toml:"disabled"`
}

type Modules struct {
	ALSASink        bool  `toml:"alsa_sink"`
	FrameSizeFactor int32 `toml:"frame_size_factor"`
}

type Renderer struct {
	Name string  `toml:"name"`
	File string  `toml:"file"`
	Loop bool    `toml:"loop"`
	Gain float32 `toml:"gain"`
}

type Metrics struct {
	Addr string `toml:"addr"`
}

type Log struct {
	Level string `toml:"level"`
}

type Config struct {
	Frontend Frontend `toml:"frontend"`
	Backend  Backend  `toml:"backend"`
	Stream   Stream   `toml:"stream"`
	Graph    Graph    `toml:"graph"`
	Mixer    Mixer    `toml:"mixer"`
	Modules  Modules  `toml:"modules"`
	Renderer Renderer `toml:"renderer"`
	Metrics  Metrics  `toml:"metrics"`
	Log      Log      `toml:"log"`
}

// Default is the speaker playback setup of the reference board.
func Default() Config {
	return Config{
		Frontend: Frontend{Card: 100, Device: 100},
		Backend:  Backend{Name: DefaultBackend, ConfFile: DefaultBackendConf},
		Stream: Stream{
			PeriodSize:  960,
			PeriodCount: 4,
			Channels:    2,
			Rate:        48000,
			Bits:        16,
			RealTime:    true,
		},
		Graph: Graph{
			Stream:   "PCM_LL_PLAYBACK",
			DevicePP: "DEVICEPP_RX_AUDIO_MBDRC",
			Device:   "SPEAKER",
			Instance: "INSTANCE_1",
		},
		Mixer:    Mixer{PathsFile: DefaultMixerPaths, Path: DefaultMixerPath},
		Renderer: Renderer{Name: "sine", Gain: 1},
		Log:      Log{Level: "info"},
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func Parse(r io.Reader) (Config, error) {
	c := Default()

	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	return c, nil
}

// Validate checks the stream geometry and the renderer selection.
func (c Config) Validate() error {
	var errs []error

	s := c.Stream
	if s.PeriodSize <= 0 || s.PeriodCount <= 0 {
		errs = append(errs, fmt.Errorf("%w: period %d x %d", ErrInvalid, s.PeriodSize, s.PeriodCount))
	}

	if !param.SupportedChannelCount(s.Channels) {
		errs = append(errs, fmt.Errorf("%w: %d channels", ErrInvalid, s.Channels))
	}

	if s.Rate <= 0 {
		errs = append(errs, fmt.Errorf("%w: rate %d", ErrInvalid, s.Rate))
	}

	if !s.Float {
		if _, err := pcmformat.FromSignedBits(s.Bits); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
		}
	}

	if c.Backend.Name == "" {
		errs = append(errs, fmt.Errorf("%w: backend name is required", ErrInvalid))
	}

	switch c.Renderer.Name {
	case "sine":
	case "file":
		if c.Renderer.File == "" {
			errs = append(errs, fmt.Errorf("%w: file renderer needs a file", ErrInvalid))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: renderer %q", ErrInvalid, c.Renderer.Name))
	}

	return errors.Join(errs...)
}

// Format is the frontend sample format.
func (s Stream) Format() (pcmformat.Format, error) {
	if s.Float {
		return pcmformat.FloatLE, nil
	}

	return pcmformat.FromSignedBits(s.Bits)
}

// FrontendName is the AGM name of the frontend PCM.
func (c Config) FrontendName() string {
	return control.FrontendName(c.Frontend.Device)
}

// Spec resolves the graph keys. Order: stream, instance, stream pp,
// device pp, device.
func (g Graph) Spec() (metadata.GraphSpec, error) {
	fields := []struct {
		key   uint32
		table catalog.Table
		value string
	}{
		{catalog.KeyStreamRX, catalog.Streams, g.Stream},
		{catalog.KeyInstance, catalog.Instances, g.Instance},
		{catalog.KeyStreamPPRX, catalog.StreamPPs, g.StreamPP},
		{catalog.KeyDevicePPRX, catalog.DevicePPs, g.DevicePP},
		{catalog.KeyDeviceRX, catalog.Devices, g.Device},
	}

	kvs := make([]metadata.KeyValue, 0, len(fields))
	for _, f := range fields {
		if f.value == "" {
			continue
		}

		v, err := catalog.ParseValue(f.table, f.value)
		if err != nil {
			return metadata.GraphSpec{}, err
		}

		kvs = append(kvs, metadata.KeyValue{Key: f.key, Value: v})
	}

	return metadata.NewGraphSpec(kvs...)
}
