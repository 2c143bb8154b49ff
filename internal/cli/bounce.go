// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/victorzappi/ar-audioengine/config"
	"github.com/victorzappi/ar-audioengine/formats/wav"
	"github.com/victorzappi/ar-audioengine/stream"
)

type bounceOpts struct {
	output  string
	seconds float64
}

func (c *CLI) bounceCommand() *cobra.Command {
	var flags engineFlags
	opts := bounceOpts{seconds: 5}

	cmd := &cobra.Command{
		Use:   "bounce",
		Short: "Render to a WAV file through the frame converter",
		Long: `bounce runs the render callback and the frame converter offline and
stores the converted periods in a WAV file, byte for byte what play would
write to the PCM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.seconds <= 0 {
				return fmt.Errorf("%w: --seconds must be positive", config.ErrInvalid)
			}

			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runBounce(cmd, cfg, opts)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output WAV file")
	cmd.Flags().Float64Var(&opts.seconds, "seconds", opts.seconds, "length to render")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (c *CLI) runBounce(cmd *cobra.Command, cfg config.Config, opts bounceOpts) (err error) {
	frames, err := frameContext(cfg.Stream)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	w, err := wav.NewWriter(f, frames.Format, cfg.Stream.Rate, cfg.Stream.Channels)
	if err != nil {
		return err
	}

	periods := int(math.Ceil(opts.seconds * float64(cfg.Stream.Rate) / float64(cfg.Stream.PeriodSize)))

	p := newProgress(c.Logger)
	n, err := stream.Bounce(cmd.Context(), newRenderer(cfg.Renderer, c.Logger), frames, cfg.Stream.Rate, periods, w)
	if cerr := w.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		return err
	}
	p.done("bounce finished", "periods", n)

	out := cmd.OutOrStdout()
	printSuccess(out, "rendered %d frames (%d periods of %d)", w.Frames(), n, cfg.Stream.PeriodSize)
	printFile(out, opts.output)

	return nil
}
