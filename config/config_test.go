package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second, cfg.SettleDelay)
	assert.Equal(t, OutputUInput, cfg.Output)
	assert.True(t, cfg.TrustPaired)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level: debug
settle_delay: 250ms
output: console
trust_paired: false
console: true
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, OutputConsole, cfg.Output)
	assert.False(t, cfg.TrustPaired)
	assert.True(t, cfg.Console)
	assert.Equal(t, Default().CombinedName, cfg.CombinedName)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	for _, doc := range []string{
		"output: gamepad\n",
		"log_level: loud\n",
		"settle_delay: -1s\n",
		"combined_name: \"\"\n",
		"settle_dealy: 1s\n",
		"output: [\n",
	} {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joycond.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settle_delay: 2s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.SettleDelay)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	cfg.LogLevel = "warn"
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
	cfg.LogLevel = ""
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}
