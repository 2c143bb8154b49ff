// SPDX-License-Identifier: EPL-2.0

// Package cli implements the audioengine command-line interface.
//
// Commands:
//   - play: configure the graph and stream until interrupted
//   - plan: print the control writes of a session without touching hardware
//   - catalog: list the routing identifiers
//   - bounce: render to a WAV file through the frame converter
//   - version
//
// Settings come from the built-in defaults, then the TOML file given by
// --config or AUDIOENGINE_CONFIG, then the environment, then the flags.
package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/victorzappi/ar-audioengine/alsadev"
	"github.com/victorzappi/ar-audioengine/config"
	"github.com/victorzappi/ar-audioengine/control"
	"github.com/victorzappi/ar-audioengine/internal/buildinfo"
	"github.com/victorzappi/ar-audioengine/mixerpaths"
	"github.com/victorzappi/ar-audioengine/stream"
)

const appName = "audioengine"

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// playbackPCM is an opened frontend PCM.
type playbackPCM interface {
	stream.PCM
	io.Closer
}

// hardware opens the sound card resources of a run.
type hardware interface {
	Controls() control.MixerOpener
	OpenCardMixer(card uint) (mixerpaths.Mixer, error)
	OpenPCM(cfg alsadev.PCMConfig) (playbackPCM, error)
	Scheduler() stream.Scheduler
}

type alsaHardware struct {
	logger *log.Logger
}

func (h alsaHardware) Controls() control.MixerOpener {
	return alsadev.Opener{Logger: h.logger}
}

func (h alsaHardware) OpenCardMixer(card uint) (mixerpaths.Mixer, error) {
	m, err := alsadev.OpenMixer(card, alsadev.WithMixerLogger(h.logger))
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (h alsaHardware) OpenPCM(cfg alsadev.PCMConfig) (playbackPCM, error) {
	w, err := alsadev.OpenPlayback(cfg, alsadev.WithWriterLogger(h.logger))
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (alsaHardware) Scheduler() stream.Scheduler { return nil }

type rootOptions struct {
	configPath string
	envFiles   []string
	verbose    bool
	quiet      bool
}

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	hw   hardware
	opts rootOptions
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	logger := newLogger(w, level)

	return &CLI{
		Logger: logger,
		hw:     alsaHardware{logger: logger},
	}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "audioengine streams audio through an AudioReach graph",
		Long:          `audioengine configures an AudioReach graph through the AGM virtual mixer and streams rendered audio through its frontend PCM with real-time scheduling.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.opts.configPath, "config", "", "TOML configuration file (env "+config.EnvConfig+")")
	pf.StringSliceVar(&c.opts.envFiles, "env-file", nil, "env files to load (default .env)")
	pf.BoolVarP(&c.opts.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&c.opts.quiet, "quiet", false, "log warnings and errors only")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(c.playCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.bounceCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// loadConfig layers defaults, the config file, the environment and the
// command line flags, then sets the log level and validates the result.
func (c *CLI) loadConfig(cmd *cobra.Command, flags *engineFlags) (config.Config, error) {
	env, err := config.LoadEnv(c.opts.envFiles...)
	if err != nil {
		return config.Config{}, err
	}

	path := c.opts.configPath
	if path == "" {
		path = env.ConfigPath
	}

	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
		c.Logger.Debug("configuration loaded", "file", path)
	}

	env.Apply(&cfg)
	flags.apply(cmd.Flags(), &cfg)

	switch {
	case c.opts.verbose:
		c.SetLogLevel(LogDebug)
	case c.opts.quiet:
		c.SetLogLevel(log.WarnLevel)
	default:
		level, err := parseLevel(cfg.Log.Level)
		if err != nil {
			return config.Config{}, errors.Join(config.ErrInvalid, err)
		}
		c.SetLogLevel(level)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			printTitle(out, appName)
			printKeyValue(out, "version", buildinfo.Version)
			printKeyValue(out, "commit", buildinfo.Commit)
			printKeyValue(out, "built", buildinfo.Date)
		},
	}
}
