// forum/config.go
package forum

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config collects the runtime knobs. Every field has a default so the
// server runs with an empty environment.
type Config struct {
	Addr            string        `env:"FORUM_ADDR,default=:8080"`
	SessionLifetime time.Duration `env:"FORUM_SESSION_LIFETIME,default=12h"`
	AvatarSize      int           `env:"FORUM_AVATAR_SIZE,default=100"`
}

// LoadConfig reads a .env file when one is present, then decodes the
// FORUM_* variables over the defaults.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
