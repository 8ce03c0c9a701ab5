package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alejandrodnm/smartmoney/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"LOG_LEVEL", "LOG_FORMAT", "HTTP_ADDR", "REFERENCE_BOOK",
	"ASIAN_BOOKS", "BANKROLL", "KELLY_FRACTION",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
engine:
  bankroll: 500
  kelly_fraction: 0.25
  batch_workers: 4
books:
  reference: betfair
  asian: [sbobet, crown]
server:
  addr: ":9090"
  rate_per_sec: 2
  burst: 5
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500.0, cfg.Engine.Bankroll)
	assert.Equal(t, 0.25, cfg.Engine.KellyFraction)
	assert.Equal(t, 4, cfg.Engine.BatchWorkers)
	assert.Equal(t, "betfair", cfg.Books.Reference)
	assert.Equal(t, []string{"sbobet", "crown"}, cfg.Books.Asian)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2.0, cfg.Server.RatePerSec)
	assert.Equal(t, 5, cfg.Server.Burst)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.Equal(t, domain.EngineConfig{Bankroll: 500, KellyFraction: 0.25}, cfg.EngineDefaults())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1000.0, cfg.Engine.Bankroll)
	assert.Equal(t, 0.3, cfg.Engine.KellyFraction)
	assert.Equal(t, domain.DefaultReferenceBook, cfg.Books.Reference)
	assert.Equal(t, domain.DefaultAsianBooks, cfg.Books.Asian)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10.0, cfg.Server.RatePerSec)
	assert.Equal(t, 20, cfg.Server.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "engine:\n  bankroll: 500\n")

	t.Setenv("BANKROLL", "2500")
	t.Setenv("KELLY_FRACTION", "0.5")
	t.Setenv("REFERENCE_BOOK", "betfair")
	t.Setenv("ASIAN_BOOKS", " sbobet, singbet ,,")
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2500.0, cfg.Engine.Bankroll)
	assert.Equal(t, 0.5, cfg.Engine.KellyFraction)
	assert.Equal(t, "betfair", cfg.Books.Reference)
	assert.Equal(t, []string{"sbobet", "singbet"}, cfg.Books.Asian)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidEnvNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("BANKROLL", "lots")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BANKROLL")
}

func TestLoad_InvalidEngineConfig(t *testing.T) {
	clearEnv(t)

	for _, content := range []string{
		"engine:\n  kelly_fraction: 1.5\n",
		"engine:\n  bankroll: -100\n",
	} {
		_, err := Load(writeConfig(t, content))
		assert.ErrorIs(t, err, domain.ErrInvalidConfig, "config %q", content)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "engine: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_ExampleConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAsianBooks, cfg.Books.Asian)
	assert.Equal(t, domain.DefaultReferenceBook, cfg.Books.Reference)
}
