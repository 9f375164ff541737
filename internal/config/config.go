package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port      string `mapstructure:"port"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	RedisEnabled  bool          `mapstructure:"redis_enabled"`
	RedisHost     string        `mapstructure:"redis_host"`
	RedisPort     string        `mapstructure:"redis_port"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	ContextTTL    time.Duration `mapstructure:"context_ttl"`

	ParserURL     string        `mapstructure:"parser_url"`
	ExecutorURL   string        `mapstructure:"executor_url"`
	CollabTimeout time.Duration `mapstructure:"collab_timeout"`

	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst"`
}

// Load reads configuration from an optional config.yaml plus environment
// overrides (PORT, REDIS_HOST, PARSER_URL, ...).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("redis_enabled", true)
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("context_ttl", 30*time.Minute)
	v.SetDefault("parser_url", "http://localhost:9091")
	v.SetDefault("executor_url", "http://localhost:9092")
	v.SetDefault("collab_timeout", 15*time.Second)
	v.SetDefault("rate_limit_per_second", 2.0)
	v.SetDefault("rate_limit_burst", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
