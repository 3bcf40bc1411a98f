package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/pformat/internal/logging"
	"github.com/conneroisu/pformat/pkg/pformat"
)

func TestLoadDefaults(t *testing.T) {
	config, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultCulture, config.Culture)
	assert.Equal(t, "span", config.ReplaceMode)
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "auto", config.Log.Format)
	assert.Equal(t, DefaultDebounce, config.Watch.Debounce)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pformat.yml")
	require.NoError(t, os.WriteFile(path, []byte(`culture: de-DE
replace_mode: value
log:
  level: debug
  format: json
watch:
  debounce: 50ms
`), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	config, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "de-DE", config.Culture)
	assert.Equal(t, "value", config.ReplaceMode)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 50*time.Millisecond, config.Watch.Debounce)
}

func TestLoadGlobalViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("culture", "invariant")

	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "invariant", config.Culture)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"bad culture", "culture", "not a tag!"},
		{"bad mode", "replace_mode", "regex"},
		{"bad level", "log.level", "loud"},
		{"bad format", "log.format", "xml"},
		{"negative debounce", "watch.debounce", "-1s"},
		{"huge debounce", "watch.debounce", "1h"},
		{"unparsable debounce", "watch.debounce", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			config, err := LoadFrom(v)
			assert.Error(t, err)
			assert.Nil(t, config)
		})
	}
}

func TestFormatterOptions(t *testing.T) {
	v := viper.New()
	v.Set("culture", "de-DE")
	v.Set("replace_mode", "legacy")
	config, err := LoadFrom(v)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LevelDebug, Format: "json", Output: &buf})

	opts, err := config.FormatterOptions(logger)
	require.NoError(t, err)

	f := pformat.New(opts...)
	assert.Equal(t, pformat.ReplaceByValue, f.Mode())
	assert.Equal(t, ",", f.Culture().DecimalSeparator())

	out, err := f.Format("{0:N2} {1}", 1234.5)
	require.NoError(t, err)
	assert.Equal(t, "1.234,50 {0}", out)
	assert.Contains(t, buf.String(), `"component":"pformat"`)
	assert.Contains(t, buf.String(), "placeholder renumbered")
}

func TestConfigLogger(t *testing.T) {
	config := &Config{Log: LogConfig{Level: "error", Format: "text"}}
	logger := config.Logger()
	require.NotNil(t, logger)
	assert.False(t, logger.Slog().Enabled(context.Background(), -4))
}
