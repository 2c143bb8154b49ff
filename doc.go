// SPDX-License-Identifier: EPL-2.0

// Package audioengine streams rendered audio through an AudioReach graph
// on Qualcomm platforms.
//
// The graph is configured through the AGM virtual mixer, a set of named
// controls on a virtual sound card. A session writes the backend media
// format, the graph metadata and the connect control, then resolves
// module instance ids from the graph's tagged module table to send module
// parameters:
//
//	plan := graph.Plan{
//		VirtualCard: 100,
//		Frontend:    "PCM100",
//		Backend:     "CODEC_DMA-LPAIF_WSA-RX-0",
//		Device:      dev,
//		Graph:       spec,
//	}
//	session, err := graph.Setup(ctx, alsadev.Opener{}, plan)
//	defer session.Close()
//
// Audio is produced one period at a time by a render.Renderer into a float
// buffer, converted to the PCM byte layout by a frame.Context and written
// to the frontend PCM by a stream.Loop running on a real-time thread:
//
//	frames, _ := frame.NewContext(pcmformat.S16LE, 16, 2, 960)
//	loop := stream.New(pcm, sine.New(), frames, 48000)
//	sched, err := stream.Run(ctx, loop, stream.DefaultPolicy())
//
// # Packages
//
//   - catalog: routing identifiers and name lookups
//   - metadata: graph and calibration key/value blobs
//   - param: module parameter payloads
//   - tagmodule: tagged module table decoding and instance lookup
//   - control: control transport interface and an in-memory recorder
//   - graph: session lifecycle with reverse teardown
//   - frame: float to PCM byte conversion
//   - render, render/sine, render/file: render callbacks
//   - stream: streaming loop, real-time scheduling, offline bounce
//   - alsadev: mixers and PCMs over gen2brain/alsa
//   - mixerpaths, backendconf: platform XML files
//   - audio, formats/*: decoded sources for file playback and WAV output
//   - metrics, config: Prometheus metrics and TOML settings
//
// The audioengine command in cmd/audioengine wires them together.
package audioengine
