package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, "http", cfg.URLs.DefaultScheme)
	assert.Equal(t, "auto", cfg.PDF.TextBackend)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdfrecon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scan:
  strict: true
  recursive: true
output:
  format: YAML
  save_dir: /tmp/reports
phone:
  region: de
  leniency: 1
urls:
  default_scheme: https
pdf:
  text_backend: native
  annotations: true
log:
  format: json
  level: DEBUG
  max_backups: 0
`), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.True(t, cfg.Scan.Strict)
	assert.True(t, cfg.Scan.Recursive)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, "/tmp/reports", cfg.Output.SaveDir)
	assert.Equal(t, "DE", cfg.Phone.Region)
	assert.Equal(t, 1, cfg.Phone.Leniency)
	assert.Equal(t, "https", cfg.URLs.DefaultScheme)
	assert.Equal(t, "native", cfg.PDF.TextBackend)
	assert.True(t, cfg.PDF.Annotations)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 100, cfg.Log.MaxSizeMB)
	assert.Zero(t, cfg.Log.MaxBackups)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PDFRECON_PHONE_REGION", "gb")

	v := viper.New()
	v.SetEnvPrefix("PDFRECON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "GB", cfg.Phone.Region)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		rule string
	}{
		{"unknown region", "phone.region", "XX", "region"},
		{"leniency too high", "phone.leniency", 4, "max"},
		{"negative leniency", "phone.leniency", -1, "min"},
		{"bad scheme", "urls.default_scheme", "http://", "scheme"},
		{"bad backend", "pdf.text_backend", "ocr", "oneof"},
		{"bad format", "output.format", "xml", "oneof"},
		{"bad log level", "log.level", "loud", "oneof"},
		{"missing regions file", "phone.regions_file", "/does/not/exist.json", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "rule '"+tt.rule+"'")
		})
	}
}
