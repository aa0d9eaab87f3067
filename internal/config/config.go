package config

import (
	"time"
)

// Config represents the complete crpt CLI configuration.
// Values come from defaults, then the config file, then CRPT_* environment variables.
type Config struct {
	BaseUrl string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Token   string        `mapstructure:"token"`
	Rate    RateConfig    `mapstructure:"rate"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RateConfig describes the client-side request limit:
// at most Limit requests per Interval*Unit.
type RateConfig struct {
	Limit    int    `mapstructure:"limit"`
	Interval int    `mapstructure:"interval"`
	Unit     string `mapstructure:"unit"`
	// Backend selects the limiter: sliding_window, token_bucket or redis.
	Backend string `mapstructure:"backend"`
}

// RedisConfig is used by the redis rate backend only.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

// BatchConfig controls how many documents are sent at once
// when several files are submitted in one run.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	BufferSize  int `mapstructure:"buffer_size"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

const (
	BackendSlidingWindow = "sliding_window"
	BackendTokenBucket   = "token_bucket"
	BackendRedis         = "redis"
)
