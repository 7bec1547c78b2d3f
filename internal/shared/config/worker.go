package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// WorkerConfig contains all configuration for the worker service.
type WorkerConfig struct {
	Device    DeviceConfig    `mapstructure:"device"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Inference InferenceConfig `mapstructure:"inference"`
	Images    ImagesConfig    `mapstructure:"images"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DeviceConfig identifies the GPU device this worker loop owns and the
// claim/lease parameters for it.
type DeviceConfig struct {
	ID          int           `mapstructure:"id"`
	LeaseTTL    time.Duration `mapstructure:"lease_ttl"`
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

// InferenceConfig contains the gRPC connection to the model-execution
// process and the per-call deadline.
type InferenceConfig struct {
	Addr        string              `mapstructure:"addr"`
	CallTimeout time.Duration       `mapstructure:"call_timeout"`
	GRPC        InferenceGRPCConfig `mapstructure:"grpc"`
}

// InferenceGRPCConfig contains gRPC client keepalive configuration.
type InferenceGRPCConfig struct {
	KeepaliveTime    time.Duration `mapstructure:"keepalive_time"`
	KeepaliveTimeout time.Duration `mapstructure:"keepalive_timeout"`
}

// LoadWorker loads the worker configuration from the given path.
// If configPath is empty, it looks for worker.yaml in the config/ directory.
// Environment variables with RENDERQ_WORKER_ prefix override config file values.
func LoadWorker(configPath string) (*WorkerConfig, error) {
	v := viper.New()

	v.SetDefault("device.id", 0)
	v.SetDefault("device.lease_ttl", 5*time.Minute)
	v.SetDefault("device.poll_timeout", 5*time.Second)
	v.SetDefault("device.max_attempts", 3)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("inference.addr", "localhost:50051")
	v.SetDefault("inference.call_timeout", 4*time.Minute)
	v.SetDefault("inference.grpc.keepalive_time", 30*time.Second)
	v.SetDefault("inference.grpc.keepalive_timeout", 5*time.Second)
	v.SetDefault("images.dir", "./images")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("worker")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("RENDERQ_WORKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg WorkerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
