// Package config resolves host settings from defaults, an optional .env file,
// the process environment and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvWidth         = "ARENA_WIDTH"
	EnvHeight        = "ARENA_HEIGHT"
	EnvSeed          = "ARENA_SEED"
	EnvSpawnInterval = "ARENA_SPAWN_INTERVAL"
	EnvDebug         = "ARENA_DEBUG"
	EnvWindowScale   = "ARENA_WINDOW_SCALE"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// Config is everything a host needs to start a match.
type Config struct {
	Game        game.Config
	WindowScale float64 // desktop window size multiplier
	Debug       bool    // debug-level logging and per-event log lines
}

// Default returns the reference 800x600 arena at 1x.
func Default() Config {
	return Config{Game: game.DefaultConfig(), WindowScale: 1}
}

// Validate checks the simulation settings and the host settings.
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if !(c.WindowScale > 0) {
		return fmt.Errorf("%w: window scale %v", game.ErrInvalidConfig, c.WindowScale)
	}
	return nil
}

// Source says where settings come from. The zero value reads nothing but flags.
type Source struct {
	EnvFile   string                      // optional dotenv file; a missing file is not an error
	LookupEnv func(string) (string, bool) // process environment; wins over EnvFile
}

// Load reads DefaultEnvFile and the process environment, then parses args
// with flags. Callers register their own flags before calling.
func Load(flags *flag.FlagSet, args []string) (Config, error) {
	return Source{EnvFile: DefaultEnvFile, LookupEnv: os.LookupEnv}.Load(flags, args)
}

// Load resolves a Config. The flags it registers take their defaults from the
// environment, so an explicit flag always wins.
func (src Source) Load(flags *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()

	lookup, err := src.lookup()
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	flags.Float64Var(&cfg.Game.ArenaWidth, "width", cfg.Game.ArenaWidth, "arena width in pixels")
	flags.Float64Var(&cfg.Game.ArenaHeight, "height", cfg.Game.ArenaHeight, "arena height in pixels")
	flags.Int64Var(&cfg.Game.Seed, "seed", cfg.Game.Seed, "RNG seed (0 = time-based)")
	flags.Float64Var(&cfg.Game.SpawnInterval, "spawn-interval", cfg.Game.SpawnInterval, "time-units between enemy spawns")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging")
	flags.Float64Var(&cfg.WindowScale, "scale", cfg.WindowScale, "window scale")
	if err := flags.Parse(args); err != nil {
		return cfg, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// lookup merges the dotenv file under the process environment.
func (src Source) lookup() (func(string) (string, bool), error) {
	file := map[string]string{}
	if src.EnvFile != "" {
		m, err := godotenv.Read(src.EnvFile)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", src.EnvFile, err)
		}
	}
	return func(key string) (string, bool) {
		if src.LookupEnv != nil {
			if v, ok := src.LookupEnv(key); ok {
				return v, true
			}
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvWidth, &cfg.Game.ArenaWidth},
		{EnvHeight, &cfg.Game.ArenaHeight},
		{EnvSpawnInterval, &cfg.Game.SpawnInterval},
		{EnvWindowScale, &cfg.WindowScale},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", f.key, v, err)
		}
		*f.dst = n
	}
	if v, ok := lookup(EnvSeed); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvSeed, v, err)
		}
		cfg.Game.Seed = n
	}
	if v, ok := lookup(EnvDebug); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvDebug, v, err)
		}
		cfg.Debug = b
	}
	return nil
}

// Logger returns a structured logger writing to w at the configured level.
func (c Config) Logger(w io.Writer, prefix string) *log.Logger {
	level := log.InfoLevel
	if c.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
}
