package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/alouvre/Eksperimen-SML-Alifia-Mustika-Sari/pkg/pipeline"
)

// EnvPrefix prefixes every environment override, e.g. STUDENTPREP_LOG_LEVEL.
const EnvPrefix = "STUDENTPREP"

// Config is the run configuration for the preprocessing CLI.
type Config struct {
	Features       []string `mapstructure:"features"`
	StatusColumn   string   `mapstructure:"status_column"`
	DropStatuses   []string `mapstructure:"drop_statuses"`
	Classes        []string `mapstructure:"classes"`
	OutputDir      string   `mapstructure:"output_dir"`
	OutputFileName string   `mapstructure:"output_file_name"`
	ScalerFileName string   `mapstructure:"scaler_file_name"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func DefaultConfig() *Config {
	opts := pipeline.DefaultOptions()
	return &Config{
		Features:       opts.Features,
		StatusColumn:   opts.StatusColumn,
		DropStatuses:   opts.DropStatuses,
		Classes:        opts.Classes,
		OutputDir:      opts.OutputDir,
		OutputFileName: opts.OutputFileName,
		ScalerFileName: "scaler.pkl",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load builds a Config from defaults, an optional YAML file and
// STUDENTPREP_* environment variables, in increasing precedence.
// envFile, if set, is loaded into the environment first; a missing file is ignored.
func Load(file, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	def := DefaultConfig()
	v := viper.New()
	v.SetDefault("features", def.Features)
	v.SetDefault("status_column", def.StatusColumn)
	v.SetDefault("drop_statuses", def.DropStatuses)
	v.SetDefault("classes", def.Classes)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("output_file_name", def.OutputFileName)
	v.SetDefault("scaler_file_name", def.ScalerFileName)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Features) == 0 {
		return errors.New("features must not be empty")
	}
	if c.StatusColumn == "" {
		return errors.New("status_column is required")
	}
	if slices.Contains(c.Features, c.StatusColumn) {
		return fmt.Errorf("status_column %q cannot also be a feature", c.StatusColumn)
	}
	// an empty list fits sorted classes from the training data
	if len(c.Classes) != 0 && len(c.Classes) != 2 {
		return fmt.Errorf("classes must be empty or name exactly two outcomes, got %d", len(c.Classes))
	}
	for _, d := range c.DropStatuses {
		if slices.Contains(c.Classes, d) {
			return fmt.Errorf("drop_statuses entry %q is also a class", d)
		}
	}
	if c.OutputFileName == "" || c.ScalerFileName == "" {
		return errors.New("output_file_name and scaler_file_name are required")
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return errors.New("log_level must be one of: debug, info, warn, error")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.New("log_format must be text or json")
	}
	return nil
}

// PipelineOptions converts the config into Preprocessor options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		StatusColumn:   c.StatusColumn,
		DropStatuses:   slices.Clone(c.DropStatuses),
		Classes:        slices.Clone(c.Classes),
		Features:       slices.Clone(c.Features),
		OutputDir:      c.OutputDir,
		OutputFileName: c.OutputFileName,
	}
}
