package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at empty temp directories.
func isolate(t *testing.T) LoadOptions {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(isolate(t))
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	opts := isolate(t)
	t.Setenv("TOURPREF_QUESTIONS_PER_SESSION", "5")
	t.Setenv("TOURPREF_ENDPOINT", " https://prefs.example.test/add ")
	t.Setenv("TOURPREF_HTTP_TIMEOUT", "3s")
	t.Setenv("TOURPREF_LOG_LEVEL", "debug")
	t.Setenv("TOURPREF_USER", "tourist-9")

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.QuestionsPerSession)
	assert.Equal(t, "https://prefs.example.test/add", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "tourist-9", cfg.User)
}

func TestLoadConfigFile(t *testing.T) {
	opts := isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
options_per_question: 3
questions_file: extra.yaml
log:
  level: warn
  file: /tmp/tourpref-test.log
`), 0o644))
	opts.ConfigFile = path

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, 3, cfg.OptionsPerQuestion)
	assert.Equal(t, 12, cfg.QuestionsPerSession)
	assert.Equal(t, "extra.yaml", cfg.QuestionsFile)
	assert.Equal(t, Log{Level: "warn", File: "/tmp/tourpref-test.log"}, cfg.Log)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	opts := isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions_per_session: 8\n"), 0o644))
	opts.ConfigFile = path
	t.Setenv("TOURPREF_QUESTIONS_PER_SESSION", "6")

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.QuestionsPerSession)
}

func TestLoadExplicitConfigMissing(t *testing.T) {
	opts := isolate(t)
	opts.ConfigFile = filepath.Join(t.TempDir(), "nope.yaml")

	_, err := Load(opts)
	require.Error(t, err)
}

func TestLoadDotenv(t *testing.T) {
	opts := isolate(t)
	opts.EnvFile = filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(opts.EnvFile, []byte("TOURPREF_OPTIONS_PER_QUESTION=2\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TOURPREF_OPTIONS_PER_QUESTION") })

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.OptionsPerQuestion)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https endpoint", func(c *Config) { c.Endpoint = "https://x.test/p" }, false},
		{"zero questions", func(c *Config) { c.QuestionsPerSession = 0 }, true},
		{"zero options", func(c *Config) { c.OptionsPerQuestion = 0 }, true},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, true},
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }, true},
		{"ftp endpoint", func(c *Config) { c.Endpoint = "ftp://x.test/p" }, true},
		{"no host", func(c *Config) { c.Endpoint = "http:///p" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
