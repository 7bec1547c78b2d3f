package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GatewayConfig contains all configuration for the dispatch gateway service.
type GatewayConfig struct {
	REST    RESTConfig    `mapstructure:"rest"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Reaper  ReaperConfig  `mapstructure:"reaper"`
	Images  ImagesConfig  `mapstructure:"images"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RESTConfig contains REST API server configuration.
type RESTConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// ReaperConfig contains lease-expiry sweep configuration.
type ReaperConfig struct {
	CheckInterval time.Duration `mapstructure:"check_interval"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
}

// LoadGateway loads the gateway configuration from the given path.
// If configPath is empty, it looks for gateway.yaml in the config/ directory.
// Environment variables with RENDERQ_GATEWAY_ prefix override config file values.
func LoadGateway(configPath string) (*GatewayConfig, error) {
	v := viper.New()

	v.SetDefault("rest.addr", ":8080")
	v.SetDefault("rest.read_timeout", 15*time.Second)
	v.SetDefault("rest.write_timeout", 15*time.Second)
	v.SetDefault("rest.idle_timeout", 60*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("reaper.check_interval", 30*time.Second)
	v.SetDefault("reaper.max_attempts", 3)
	v.SetDefault("images.dir", "./images")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("gateway")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("RENDERQ_GATEWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg GatewayConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
