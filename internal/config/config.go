package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/zeusync/rocketbot/internal/core/agent"
	"github.com/zeusync/rocketbot/internal/core/observability/log"
)

// EnvPrefix namespaces environment overrides: agent.car_index is read from
// ROCKETBOT_AGENT_CAR_INDEX.
const EnvPrefix = "ROCKETBOT"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Agent  AgentConfig  `mapstructure:"agent" yaml:"agent"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Replay ReplayConfig `mapstructure:"replay" yaml:"replay"`
}

type AgentConfig struct {
	CarIndex       int    `mapstructure:"car_index" yaml:"car_index"`
	WarmupTicks    int    `mapstructure:"warmup_ticks" yaml:"warmup_ticks"`
	DebugRendering bool   `mapstructure:"debug_rendering" yaml:"debug_rendering"`
	Strategy       string `mapstructure:"strategy" yaml:"strategy"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

type ReplayConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
	// ScenarioTicks is the length of generated recordings.
	ScenarioTicks int `mapstructure:"scenario_ticks" yaml:"scenario_ticks"`
}

// SetDefaults registers every key so env overrides apply even without a file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("agent.car_index", 0)
	v.SetDefault("agent.warmup_ticks", agent.DefaultWarmupTicks)
	v.SetDefault("agent.debug_rendering", false)
	v.SetDefault("agent.strategy", "solo")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	v.SetDefault("replay.workers", 4)
	v.SetDefault("replay.scenario_ticks", 600)
}

// Load reads defaults, the optional config file and ROCKETBOT_* env vars into
// v and decodes the result. An empty path looks for ./rocketbot.yaml and
// tolerates its absence; an explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("rocketbot")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Agent.CarIndex < 0 {
		return fmt.Errorf("%w: agent.car_index must be >= 0, got %d", ErrInvalidConfig, c.Agent.CarIndex)
	}
	if c.Agent.WarmupTicks < 0 {
		return fmt.Errorf("%w: agent.warmup_ticks must be >= 0, got %d", ErrInvalidConfig, c.Agent.WarmupTicks)
	}
	if c.Agent.Strategy == "" {
		return fmt.Errorf("%w: agent.strategy is required", ErrInvalidConfig)
	}
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logger.format must be json or console, got %q", ErrInvalidConfig, c.Logger.Format)
	}
	if c.Replay.Workers < 1 {
		return fmt.Errorf("%w: replay.workers must be >= 1, got %d", ErrInvalidConfig, c.Replay.Workers)
	}
	if c.Replay.ScenarioTicks < 1 {
		return fmt.Errorf("%w: replay.scenario_ticks must be >= 1, got %d", ErrInvalidConfig, c.Replay.ScenarioTicks)
	}
	return nil
}

// AgentSettings converts to the agent's own settings.
func (c *Config) AgentSettings() agent.Config {
	return agent.Config{
		CarIndex:       c.Agent.CarIndex,
		WarmupTicks:    c.Agent.WarmupTicks,
		DebugRendering: c.Agent.DebugRendering,
	}
}

// LogConfig converts to the logger's settings.
func (c *Config) LogConfig() log.Config {
	return log.Config{
		Level:      c.Logger.Level,
		Format:     c.Logger.Format,
		File:       c.Logger.File,
		MaxSize:    c.Logger.MaxSize,
		MaxBackups: c.Logger.MaxBackups,
		MaxAge:     c.Logger.MaxAge,
		Compress:   c.Logger.Compress,
	}
}
