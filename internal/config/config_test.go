package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func newFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	return fs
}

func writeEnvFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Source{}.Load(newFlags(), nil)
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), cfg.Game)
	assert.Equal(t, 1.0, cfg.WindowScale)
	assert.False(t, cfg.Debug)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	src := Source{EnvFile: filepath.Join(t.TempDir(), "nope.env")}
	_, err := src.Load(newFlags(), nil)
	require.NoError(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeEnvFile(t, "ARENA_WIDTH=1024\nARENA_HEIGHT=768\nARENA_SEED=42\nARENA_DEBUG=true\n")
	cfg, err := Source{EnvFile: path}.Load(newFlags(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1024.0, cfg.Game.ArenaWidth)
	assert.Equal(t, 768.0, cfg.Game.ArenaHeight)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.True(t, cfg.Debug)
}

func TestLoad_EnvironmentBeatsEnvFile(t *testing.T) {
	path := writeEnvFile(t, "ARENA_WIDTH=1024\nARENA_WINDOW_SCALE=2\n")
	src := Source{EnvFile: path, LookupEnv: env(map[string]string{EnvWidth: "640"})}
	cfg, err := src.Load(newFlags(), nil)
	require.NoError(t, err)
	assert.Equal(t, 640.0, cfg.Game.ArenaWidth)
	assert.Equal(t, 2.0, cfg.WindowScale, "unset keys still come from the file")
}

func TestLoad_FlagsBeatEnvironment(t *testing.T) {
	src := Source{LookupEnv: env(map[string]string{EnvWidth: "640", EnvSeed: "7"})}
	cfg, err := src.Load(newFlags(), []string{"-width", "900", "-spawn-interval", "1500"})
	require.NoError(t, err)
	assert.Equal(t, 900.0, cfg.Game.ArenaWidth)
	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.Equal(t, 1500.0, cfg.Game.SpawnInterval)
}

func TestLoad_CallerFlagsSurvive(t *testing.T) {
	fs := newFlags()
	runs := fs.Int("runs", 5, "runs")
	_, err := Source{}.Load(fs, []string{"-runs", "9", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, 9, *runs)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unparsable width": {EnvWidth: "wide"},
		"bad seed":         {EnvSeed: "1.5"},
		"bad debug":        {EnvDebug: "sometimes"},
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Source{LookupEnv: env(m)}.Load(newFlags(), nil)
			require.Error(t, err)
		})
	}
}

func TestLoad_ValidationWrapsSentinel(t *testing.T) {
	_, err := Source{LookupEnv: env(map[string]string{EnvHeight: "0"})}.Load(newFlags(), nil)
	require.ErrorIs(t, err, game.ErrInvalidConfig)

	_, err = Source{}.Load(newFlags(), []string{"-scale", "0"})
	require.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestLoad_UnknownFlag(t *testing.T) {
	_, err := Source{}.Load(newFlags(), []string{"-bogus"})
	require.Error(t, err)
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	Config{}.Logger(&buf, "t").Debug("hidden")
	assert.Empty(t, buf.String())

	Config{Debug: true}.Logger(&buf, "t").Debug("shown", "k", 1)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=1")
}
