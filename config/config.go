// Package config loads the settings for cmd/ratelimiter-demo from the
// environment. The core library itself is never configured this way —
// only through Factory/Builder setters — this package exists purely for
// the demo host, mirroring how the original project's embedding service
// (carbon-intensity-api) loaded its own settings.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Settings holds the environment-driven configuration for the demo host.
type Settings struct {
	Algorithm  string        `env:"RATELIMITER_ALGORITHM" env-default:"token_bucket" validate:"oneof=token_bucket fixed_window sliding_window"`
	Limit      uint64        `env:"RATELIMITER_LIMIT" env-default:"5" validate:"gte=1"`
	Window     time.Duration `env:"RATELIMITER_WINDOW" env-default:"60s" validate:"gt=0"`
	RedisHost  string        `env:"RATELIMITER_REDIS_HOST" env-default:"127.0.0.1" validate:"required"`
	RedisPort  uint16        `env:"RATELIMITER_REDIS_PORT" env-default:"6379" validate:"gt=0"`
	ListenAddr string        `env:"RATELIMITER_LISTEN_ADDR" env-default:":8080" validate:"required"`
	LogBackend string        `env:"RATELIMITER_LOG_BACKEND" env-default:"log" validate:"oneof=log zap zerolog logrus"`
}

// Load reads Settings from the environment and validates them.
func Load() (*Settings, error) {
	var s Settings
	if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := validator.New().Struct(&s); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &s, nil
}
