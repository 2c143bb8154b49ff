// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/victorzappi/ar-audioengine/alsadev"
	"github.com/victorzappi/ar-audioengine/config"
	"github.com/victorzappi/ar-audioengine/graph"
	"github.com/victorzappi/ar-audioengine/metrics"
	"github.com/victorzappi/ar-audioengine/mixerpaths"
	"github.com/victorzappi/ar-audioengine/stream"
)

func (c *CLI) playCommand() *cobra.Command {
	var flags engineFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Configure the graph and stream until interrupted",
		Long: `play routes the physical card, sets up the AudioReach graph on the virtual
card, opens the frontend PCM and runs the render callback on a real-time
thread. Ctrl-C stops the stream and tears everything down in reverse.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runPlay(cmd, cfg)
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

// routeCard applies the mixer defaults and the configured path to the
// physical card. It returns nil when the mixer is disabled.
func (c *CLI) routeCard(cfg config.Config) (*mixerpaths.Controller, error) {
	if cfg.Mixer.Disabled {
		return nil, nil
	}

	paths, err := mixerpaths.Load(cfg.Mixer.PathsFile)
	if err != nil {
		return nil, err
	}

	if _, ok := paths.Lookup(cfg.Mixer.Path); !ok {
		return nil, fmt.Errorf("%w: %q", mixerpaths.ErrPathNotFound, cfg.Mixer.Path)
	}

	hw, err := c.hw.OpenCardMixer(cfg.Backend.Card)
	if err != nil {
		return nil, fmt.Errorf("hardware mixer: %w", err)
	}

	ctrl := mixerpaths.New(hw, paths, mixerpaths.WithLogger(c.Logger))
	if err := ctrl.SetPath(cfg.Mixer.Path); err != nil {
		return nil, errors.Join(err, ctrl.Reset())
	}

	return ctrl, nil
}

// runPlay checks its input, then brings up the hardware mixer, the graph
// session and the PCM in that order and releases them in reverse.
func (c *CLI) runPlay(cmd *cobra.Command, cfg config.Config) (err error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := c.Logger

	dev, err := backendDevice(cfg)
	if err != nil {
		return err
	}

	plan, err := graphPlan(cfg, dev)
	if err != nil {
		return err
	}

	frames, err := frameContext(cfg.Stream)
	if err != nil {
		return err
	}

	ctrl, err := c.routeCard(cfg)
	if err != nil {
		return err
	}
	if ctrl != nil {
		defer func() { err = errors.Join(err, ctrl.Reset()) }()
	}

	m := metrics.New()

	session, err := graph.Setup(ctx, c.hw.Controls(), plan, graph.WithLogger(logger), graph.WithObserver(m))
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, session.Close()) }()

	pcm, err := c.hw.OpenPCM(alsadev.PCMConfig{
		Card:        cfg.Frontend.Card,
		Device:      cfg.Frontend.Device,
		Rate:        cfg.Stream.Rate,
		Channels:    cfg.Stream.Channels,
		Format:      frames.Format,
		PeriodSize:  cfg.Stream.PeriodSize,
		PeriodCount: cfg.Stream.PeriodCount,
	})
	if err != nil {
		return fmt.Errorf("frontend pcm: %w", err)
	}
	defer func() { err = errors.Join(err, pcm.Close()) }()

	loop := stream.New(pcm, newRenderer(cfg.Renderer, logger), frames, cfg.Stream.Rate,
		stream.WithLogger(logger),
		stream.WithObserver(m),
		stream.WithOnStart(session.MarkStreaming),
	)

	if cfg.Metrics.Addr != "" {
		srv := metrics.NewServer(cfg.Metrics.Addr, m, func() metrics.Status {
			return metrics.Status{
				Session:  session.ID().String(),
				State:    session.State().String(),
				Frontend: session.Frontend(),
				Backend:  session.Backend(),
				Periods:  loop.Periods(),
			}
		}, logger)

		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer func() { err = errors.Join(err, srv.Stop()) }()
	}

	media := session.Media()
	printInfo(out, "streaming %s to %s", session.Frontend(), session.Backend())
	printKeyValue(out, "session", session.ID().String())
	printKeyValue(out, "stream", fmt.Sprintf("%v %d ch %d Hz", frames.Format, cfg.Stream.Channels, cfg.Stream.Rate))
	printKeyValue(out, "backend", fmt.Sprintf("%d bit %d ch %d Hz", media.Bits, media.Channels, media.Rate))

	policy := stream.SchedulingPolicy{RealTime: cfg.Stream.RealTime, Scheduler: c.hw.Scheduler()}
	sched, runErr := stream.Run(ctx, loop, policy)

	if sched.Err != nil {
		printWarning(out, "audio thread %s", sched)
	}

	printDetail(out, "%d periods, %s", loop.Periods(), sched)

	if errors.Is(runErr, context.Canceled) {
		printInfo(out, "stopped, tearing down")
		return nil
	}

	if runErr != nil {
		printError(out, "stream stopped: %v", runErr)
	}

	return runErr
}
