package config

// LoggingConfig contains logging-related configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RedisConfig contains connection settings for the backing store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ImagesConfig points at the directory where generated images are written
// and served from.
type ImagesConfig struct {
	Dir string `mapstructure:"dir"`
}
