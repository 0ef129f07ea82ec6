package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is the production MalBeacon API root.
	DefaultBaseURL = "https://api.malbeacon.com/v1"

	// DefaultTimeout bounds a single lookup round trip.
	DefaultTimeout = 30 * time.Second
)

type Config struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LogLevel  string        `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	// Environment variables support
	// e.g. MALBEACON_API_KEY
	viper.SetEnvPrefix("malbeacon")
	viper.AutomaticEnv()

	// Defaults. Every key gets one so AutomaticEnv can see it
	// during Unmarshal; there is no config file for this tool.
	viper.SetDefault("api_key", "")
	viper.SetDefault("base_url", DefaultBaseURL)
	viper.SetDefault("user_agent", "")
	viper.SetDefault("timeout", DefaultTimeout)
	viper.SetDefault("log_level", "info")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
