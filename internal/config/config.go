package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FORMLOGIC_POLL_INTERVAL.
const EnvPrefix = "FORMLOGIC"

type PollConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	ErrorMessage string        `mapstructure:"error_message"`
}

type RedisConfig struct {
	Addr   string        `mapstructure:"addr"`
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type Config struct {
	LogLevel    string      `mapstructure:"log_level"`
	RenderStyle string      `mapstructure:"render_style"`
	ProbesFile  string      `mapstructure:"probes_file"`
	StatusDir   string      `mapstructure:"status_dir"`
	Poll        PollConfig  `mapstructure:"poll"`
	Redis       RedisConfig `mapstructure:"redis"`
}

// PollOptions converts the poll section into options for poll.Poll.
func (c *Config) PollOptions() []poll.Option {
	return []poll.Option{
		poll.WithInterval(c.Poll.Interval),
		poll.WithMaxAttempts(c.Poll.MaxAttempts),
		poll.WithErrorMessage(c.Poll.ErrorMessage),
	}
}

// Load reads the configuration file at path, if any, and applies
// FORMLOGIC_* environment overrides on top of the defaults.
// An empty path looks for formlogic.yaml in the working directory and
// tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("render_style", "")
	v.SetDefault("probes_file", "probes.yaml")
	v.SetDefault("status_dir", ".formlogic/status")
	v.SetDefault("poll.interval", poll.DefaultInterval)
	v.SetDefault("poll.max_attempts", poll.Unlimited)
	v.SetDefault("poll.error_message", poll.DefaultErrorMessage)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.prefix", "formlogic:status:")
	v.SetDefault("redis.ttl", time.Hour)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("formlogic")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
