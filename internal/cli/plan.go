// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/victorzappi/ar-audioengine/backendconf"
	"github.com/victorzappi/ar-audioengine/catalog"
	"github.com/victorzappi/ar-audioengine/config"
	"github.com/victorzappi/ar-audioengine/control"
	"github.com/victorzappi/ar-audioengine/graph"
	"github.com/victorzappi/ar-audioengine/pcmformat"
	"github.com/victorzappi/ar-audioengine/tagmodule"
)

// Module instance ids reported by the dry-run graph.
const (
	planMFCInstance        = 0x4001
	planHWEndpointInstance = 0x4002
)

func (c *CLI) planCommand() *cobra.Command {
	var flags engineFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the control writes of a session without touching hardware",
		Long: `plan runs the session setup and teardown against an in-memory mixer and
prints every control operation in order. The graph reports a media format
converter and, when modules are configured, a hardware endpoint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runPlan(cmd, cfg)
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

// planDevice is the backend entry used by the dry run. Without a readable
// backend configuration it falls back to the stream format.
func (c *CLI) planDevice(cmd *cobra.Command, cfg config.Config) (backendconf.Device, error) {
	dev, err := backendDevice(cfg)
	if err == nil {
		return dev, nil
	}

	if errors.Is(err, backendconf.ErrNotFound) {
		return backendconf.Device{}, err
	}

	printWarning(cmd.OutOrStdout(), "backend configuration unavailable, using the stream format: %v", err)

	return backendconf.Device{
		Name:     cfg.Backend.Name,
		Rate:     cfg.Stream.Rate,
		Channels: cfg.Stream.Channels,
		Bits:     cfg.Stream.Bits,
		Format:   pcmformat.Invalid,
	}, nil
}

// planTable is the tagged module table the dry-run graph reports.
func planTable(cfg config.Config) *tagmodule.Table {
	t := &tagmodule.Table{Entries: []tagmodule.Entry{{
		Tag:     catalog.TagPerStreamPerDeviceMFC,
		Modules: []tagmodule.Module{{InstanceID: planMFCInstance}},
	}}}

	if cfg.Modules.ALSASink || cfg.Modules.FrameSizeFactor > 0 {
		t.Entries = append(t.Entries, tagmodule.Entry{
			Tag:     catalog.TagDeviceHWEndpointRX,
			Modules: []tagmodule.Module{{InstanceID: planHWEndpointInstance}},
		})
	}

	return t
}

func (c *CLI) runPlan(cmd *cobra.Command, cfg config.Config) error {
	out := cmd.OutOrStdout()

	dev, err := c.planDevice(cmd, cfg)
	if err != nil {
		return err
	}

	plan, err := graphPlan(cfg, dev)
	if err != nil {
		return err
	}

	rec := control.NewRecorder()
	rec.SetRead(control.Endpoint(plan.Frontend, control.GetTaggedInfo), planTable(cfg).Encode())

	session, err := graph.Setup(cmd.Context(), rec.Opener(), plan, graph.WithLogger(c.Logger))
	if err != nil {
		return err
	}

	printTitle(out, "session "+session.ID().String())
	printKeyValue(out, "frontend", fmt.Sprintf("%s on card %d", plan.Frontend, plan.VirtualCard))
	printKeyValue(out, "backend", dev.String())
	for _, kv := range plan.Graph.Pairs() {
		printKeyValue(out, catalog.KeyToName(kv.Key), catalog.KeyToName(kv.Value))
	}

	if err := session.MarkStreaming(); err != nil {
		return errors.Join(err, session.Close())
	}

	if err := session.Close(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for i, op := range rec.Ops() {
		fmt.Fprintf(out, "%s %s\n", StyleNumber.Render(fmt.Sprintf("%3d", i+1)), op)
	}

	printSuccess(out, "%d control operations, session %s", len(rec.Ops()), session.State())

	return nil
}
