// Package config loads and writes the pricer configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/banachtech/digicall/bsm"
	"github.com/banachtech/digicall/logging"
	"github.com/banachtech/digicall/mc"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes environment overrides, e.g. DIGICALL_PRICING_TRIALS.
const EnvPrefix = "DIGICALL"

// Config represents the complete application configuration
type Config struct {
	Pricing Pricing        `mapstructure:"pricing" yaml:"pricing"`
	Server  Server         `mapstructure:"server" yaml:"server"`
	Log     logging.Config `mapstructure:"log" yaml:"log"`
}

// Pricing contains the estimator settings
type Pricing struct {
	Trials        int    `mapstructure:"trials" yaml:"trials"`
	Steps         int    `mapstructure:"steps" yaml:"steps"`
	Paths         int    `mapstructure:"paths" yaml:"paths"`
	Workers       int    `mapstructure:"workers" yaml:"workers"`
	Seed          uint64 `mapstructure:"seed" yaml:"seed"` // 0 draws a fresh seed per request
	Shock         string `mapstructure:"shock" yaml:"shock"`
	Formula       string `mapstructure:"formula" yaml:"formula"`
	ClosedFormLaw string `mapstructure:"closed_form_law" yaml:"closed_form_law"`
}

// Server contains HTTP API settings
type Server struct {
	Address string `mapstructure:"address" yaml:"address"`
}

// Default returns the console defaults
func Default() *Config {
	return &Config{
		Pricing: Pricing{
			Trials:        mc.DefaultTrials,
			Steps:         mc.DefaultSteps,
			Paths:         1,
			Workers:       1,
			Shock:         string(mc.LawUniform),
			Formula:       string(bsm.FormulaLogRatio),
			ClosedFormLaw: string(mc.LawNormal),
		},
		Server: Server{
			Address: ":8080",
		},
		Log: logging.DefaultConfig(),
	}
}

// Load reads configuration from path (YAML, JSON or TOML by extension) on top
// of the defaults, then applies DIGICALL_* environment overrides. An empty
// path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("pricing.trials", d.Pricing.Trials)
	v.SetDefault("pricing.steps", d.Pricing.Steps)
	v.SetDefault("pricing.paths", d.Pricing.Paths)
	v.SetDefault("pricing.workers", d.Pricing.Workers)
	v.SetDefault("pricing.seed", d.Pricing.Seed)
	v.SetDefault("pricing.shock", d.Pricing.Shock)
	v.SetDefault("pricing.formula", d.Pricing.Formula)
	v.SetDefault("pricing.closed_form_law", d.Pricing.ClosedFormLaw)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
}

// SaveToFile writes the configuration as YAML
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	p := c.Pricing
	if p.Trials <= 0 {
		return fmt.Errorf("%w: pricing.trials must be positive", ErrInvalid)
	}
	if p.Steps <= 0 {
		return fmt.Errorf("%w: pricing.steps must be positive", ErrInvalid)
	}
	if p.Paths <= 0 {
		return fmt.Errorf("%w: pricing.paths must be positive", ErrInvalid)
	}
	if p.Workers <= 0 {
		return fmt.Errorf("%w: pricing.workers must be positive", ErrInvalid)
	}
	if _, err := mc.ParseLaw(p.Shock); err != nil {
		return fmt.Errorf("%w: pricing.shock: %v", ErrInvalid, err)
	}
	if _, err := mc.ParseLaw(p.ClosedFormLaw); err != nil {
		return fmt.Errorf("%w: pricing.closed_form_law: %v", ErrInvalid, err)
	}
	if _, err := bsm.ParseFormula(p.Formula); err != nil {
		return fmt.Errorf("%w: pricing.formula: %v", ErrInvalid, err)
	}
	if err := logging.CheckLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("%w: server.address is required", ErrInvalid)
	}
	return nil
}
