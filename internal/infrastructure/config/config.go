package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/uwgen/media-api/internal/pkg/secrets"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret       string `env:"JWT_SECRET, required"`
	JWTAlgorithm    string `env:"JWT_ALGORITHM, default=HS256"`
	TokenTTLMinutes int    `env:"ACCESS_TOKEN_TTL_MINUTES, default=30"`

	// Per-purpose encryption keys, base64url-encoded 32-byte values.
	GeminiKeySecret string `env:"GEMINI_KEY_SECRET, required"`
	UwgenKeySecret  string `env:"UWGEN_KEY_SECRET, required"`

	MediaRoot         string `env:"MEDIA_ROOT, default=./media"`
	SessionTTLMinutes int    `env:"SESSION_TTL_MINUTES, default=720"`

	GeminiAPIURL string `env:"GEMINI_API_URL, default=https://generativelanguage.googleapis.com"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=uwgen"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// TokenTTL returns the access token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// SessionTTL returns the server-side session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// EncryptionKeys decodes the per-purpose key material. Missing or malformed
// keys are fatal: the process must not start without its full key set.
func (c *Config) EncryptionKeys() (map[secrets.Purpose][]byte, error) {
	keys := make(map[secrets.Purpose][]byte, 2)
	for purpose, encoded := range map[secrets.Purpose]string{
		secrets.PurposeGemini: c.GeminiKeySecret,
		secrets.PurposeUwgen:  c.UwgenKeySecret,
	} {
		key, err := base64.RawURLEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("config: key for purpose %q is not valid base64url: %w", purpose, err)
		}
		keys[purpose] = key
	}
	return keys, nil
}
