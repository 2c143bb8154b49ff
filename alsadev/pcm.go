// SPDX-License-Identifier: EPL-2.0

// Package alsadev connects the engine to sound cards through
// github.com/gen2brain/alsa: a playback writer for the frontend PCM and a
// control adapter serving both the AGM virtual mixer and the physical
// card's mixer.
package alsadev

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/alsa"

	"github.com/victorzappi/ar-audioengine/pcmformat"
)

// PCMConfig describes the frontend stream.
type PCMConfig struct {
	Card        uint
	Device      uint
	Rate        int
	Channels    int
	Format      pcmformat.Format
	PeriodSize  int
	PeriodCount int
}

// FrameBytes is the size of one interleaved frame.
func (c PCMConfig) FrameBytes() int {
	return c.Channels * c.Format.PhysicalBits() / 8
}

func (c PCMConfig) alsaConfig() *alsa.Config {
	return &alsa.Config{
		Channels:    uint32(c.Channels),
		Rate:        uint32(c.Rate),
		Format:      alsa.PcmFormat(c.Format),
		PeriodSize:  uint32(c.PeriodSize),
		PeriodCount: uint32(c.PeriodCount),
	}
}

// pcmHandle is the part of *alsa.PCM the writer uses.
type pcmHandle interface {
	Start() error
	Stop() error
	Write(data any) error
	Xruns() int
	Close() error
}

// Writer plays raw periods on a PCM device.
type Writer struct {
	cfg        PCMConfig
	pcm        pcmHandle
	frameBytes int
	logger     *log.Logger
}

type WriterOption func(*Writer)

func WithWriterLogger(l *log.Logger) WriterOption {
	return func(w *Writer) { w.logger = l }
}

// OpenPlayback opens card/device for playback with cfg.
func OpenPlayback(cfg PCMConfig, opts ...WriterOption) (*Writer, error) {
	pcm, err := alsa.PcmOpen(cfg.Card, cfg.Device, alsa.PCM_OUT, cfg.alsaConfig())
	if err != nil {
		return nil, fmt.Errorf("opening hw:%d,%d: %w", cfg.Card, cfg.Device, err)
	}

	return newWriter(cfg, pcm, opts...), nil
}

func newWriter(cfg PCMConfig, pcm pcmHandle, opts ...WriterOption) *Writer {
	w := &Writer{
		cfg:        cfg,
		pcm:        pcm,
		frameBytes: cfg.FrameBytes(),
		logger:     log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(w)
	}

	w.logger.Debug("pcm open", "card", cfg.Card, "device", cfg.Device, "rate", cfg.Rate,
		"channels", cfg.Channels, "format", cfg.Format, "period", cfg.PeriodSize, "periods", cfg.PeriodCount)

	return w
}

func (w *Writer) Config() PCMConfig { return w.cfg }

// Xruns counts the underruns the device recovered from.
func (w *Writer) Xruns() int {
	if w.pcm == nil {
		return 0
	}

	return w.pcm.Xruns()
}

func (w *Writer) Start() error {
	if w.pcm == nil {
		return ErrClosed
	}

	return w.pcm.Start()
}

func (w *Writer) Stop() error {
	if w.pcm == nil {
		return ErrClosed
	}

	return w.pcm.Stop()
}

// Write blocks until the whole period was accepted by the device.
func (w *Writer) Write(period []byte) error {
	if w.pcm == nil {
		return ErrClosed
	}

	if len(period)%w.frameBytes != 0 {
		return fmt.Errorf("%w: %d bytes, %d per frame", ErrPartialFrame, len(period), w.frameBytes)
	}

	if err := w.pcm.Write(period); err != nil {
		return fmt.Errorf("writing %d frames: %w", len(period)/w.frameBytes, err)
	}

	return nil
}

func (w *Writer) Close() error {
	if w.pcm == nil {
		return nil
	}

	w.logger.Debug("pcm closed", "card", w.cfg.Card, "device", w.cfg.Device, "xruns", w.pcm.Xruns())

	err := w.pcm.Close()
	w.pcm = nil

	return err
}
