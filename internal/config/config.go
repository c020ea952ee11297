// Package config loads cubesim settings from defaults and CUBESIM_*
// environment variables.
package config

import (
	"time"

	"github.com/SeamusWaldron/cubesim"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CUBESIM_"

// Config is the complete cubesim configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Scramble ScrambleConfig `koanf:"scramble"`
	Solver   SolverConfig   `koanf:"solver"`
	Play     PlayConfig     `koanf:"play"`
}

// DatabaseConfig locates the session database.
type DatabaseConfig struct {
	// Path of the SQLite file. Empty means ~/.cubesim/cubesim.db.
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

type ScrambleConfig struct {
	Length    int  `koanf:"length"     validate:"min=1,max=1000"`
	HalfTurns bool `koanf:"half_turns"`
}

// Policy returns the scramble policy selected by HalfTurns.
func (c ScrambleConfig) Policy() cubesim.ScramblePolicy {
	if c.HalfTurns {
		return cubesim.PolicyAllTurns
	}
	return cubesim.PolicyQuarterTurns
}

// SolverConfig selects the external two-phase solver. URL wins over Command
// when both are set.
type SolverConfig struct {
	URL     string        `koanf:"url"     validate:"omitempty,url"`
	Command string        `koanf:"command"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
	Retries int           `koanf:"retries" validate:"min=0,max=10"`
}

type PlayConfig struct {
	ReplayInterval time.Duration `koanf:"replay_interval" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Scramble: ScrambleConfig{
			Length: 10,
		},
		Solver: SolverConfig{
			Timeout: cubesim.DefaultSolveTimeout,
			Retries: 2,
		},
		Play: PlayConfig{
			ReplayInterval: 300 * time.Millisecond,
		},
	}
}
