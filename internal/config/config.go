// Package config loads the pdfrecon settings from viper (file, environment
// and flags) and validates them.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/btraven00/pdfrecon/internal/extractor"
	"github.com/btraven00/pdfrecon/internal/logger"
	"github.com/btraven00/pdfrecon/internal/phone"
)

// Config is the full set of scan settings.
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan" yaml:"scan"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	Phone  PhoneConfig  `mapstructure:"phone" yaml:"phone"`
	URLs   URLConfig    `mapstructure:"urls" yaml:"urls"`
	PDF    PDFConfig    `mapstructure:"pdf" yaml:"pdf"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

type ScanConfig struct {
	Strict    bool `mapstructure:"strict" yaml:"strict"`
	Recursive bool `mapstructure:"recursive" yaml:"recursive"`
}

type OutputConfig struct {
	File    string `mapstructure:"file" yaml:"file"`
	SaveDir string `mapstructure:"save_dir" yaml:"save_dir"`
	Format  string `mapstructure:"format" yaml:"format" validate:"oneof=json yaml yml"`
}

type PhoneConfig struct {
	// Region is an ISO 3166 alpha-2 code used for numbers written without
	// a country prefix. Empty means international numbers only.
	Region      string `mapstructure:"region" yaml:"region" validate:"omitempty,region"`
	Leniency    int    `mapstructure:"leniency" yaml:"leniency" validate:"min=0,max=3"`
	RegionsFile string `mapstructure:"regions_file" yaml:"regions_file" validate:"omitempty,file"`
}

type URLConfig struct {
	DefaultScheme string `mapstructure:"default_scheme" yaml:"default_scheme" validate:"required,scheme"`
}

type PDFConfig struct {
	TextBackend string `mapstructure:"text_backend" yaml:"text_backend" validate:"oneof=auto docconv native"`
	Annotations bool   `mapstructure:"annotations" yaml:"annotations"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic"`
	Format     string `mapstructure:"format" yaml:"format" validate:"oneof=console json"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" validate:"min=1"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" validate:"min=0"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Output: OutputConfig{Format: "json"},
		URLs:   URLConfig{DefaultScheme: extractor.DefaultScheme},
		PDF:    PDFConfig{TextBackend: "auto"},
		Log: LogConfig{
			Level:      "info",
			Format:     logger.FormatConsole,
			MaxSizeMB:  logger.DefaultMaxSizeMB,
			MaxBackups: logger.DefaultMaxBackups,
		},
	}
}

// SetDefaults registers Default under the viper keys.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("scan.strict", d.Scan.Strict)
	v.SetDefault("scan.recursive", d.Scan.Recursive)
	v.SetDefault("output.file", d.Output.File)
	v.SetDefault("output.save_dir", d.Output.SaveDir)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("phone.region", d.Phone.Region)
	v.SetDefault("phone.leniency", d.Phone.Leniency)
	v.SetDefault("phone.regions_file", d.Phone.RegionsFile)
	v.SetDefault("urls.default_scheme", d.URLs.DefaultScheme)
	v.SetDefault("pdf.text_backend", d.PDF.TextBackend)
	v.SetDefault("pdf.annotations", d.PDF.Annotations)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.Phone.Region = strings.ToUpper(strings.TrimSpace(cfg.Phone.Region))
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.PDF.TextBackend = strings.ToLower(cfg.PDF.TextBackend)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()

	// Region codes come from libphonenumber. A restricted list from
	// regions_file is applied later by phone.LoadRegions.
	supported := phone.SupportedRegions()
	_ = validate.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return supported.Contains(strings.ToUpper(fl.Field().String()))
	})

	_ = validate.RegisterValidation("scheme", func(fl validator.FieldLevel) bool {
		return extractor.IsScheme(fl.Field().String())
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("%s: rule '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}

		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}

		messages = append(messages, msg)
	}

	return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
}
