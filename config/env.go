// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvConfig      = "AUDIOENGINE_CONFIG"
	EnvLogLevel    = "AUDIOENGINE_LOG_LEVEL"
	EnvMetricsAddr = "AUDIOENGINE_METRICS_ADDR"
)

// Env holds the overrides read from the environment.
type Env struct {
	ConfigPath  string
	LogLevel    string
	MetricsAddr string
}

// LoadEnv loads the given env files, ".env" when none are given, without
// overriding variables already set. Missing files are ignored.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}

	return Env{
		ConfigPath:  os.Getenv(EnvConfig),
		LogLevel:    os.Getenv(EnvLogLevel),
		MetricsAddr: os.Getenv(EnvMetricsAddr),
	}, nil
}

// Apply copies the set overrides into c.
func (e Env) Apply(c *Config) {
	if e.LogLevel != "" {
		c.Log.Level = e.LogLevel
	}

	if e.MetricsAddr != "" {
		c.Metrics.Addr = e.MetricsAddr
	}
}
