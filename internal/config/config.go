// Package config loads client settings from the environment. A local .env
// file, when present, is loaded first so development setups mirror the
// hosted configuration.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the client needs to reach the record store and
// the object store.
//
// Fields:
//   - BackendURL / APIKey: base URL and anon key of the hosted record API.
//   - S3*: object storage settings; the bucket holds avatar images.
//   - PublicBucket: when false, public URL composition yields nothing and
//     avatar resolution falls back to signed URLs.
//   - SignedURLTTL: validity window for signed avatar URLs.
type Config struct {
	BackendURL string `env:"ALUMNIHUB_BACKEND_URL" envDefault:"http://127.0.0.1:54321"`
	APIKey     string `env:"ALUMNIHUB_API_KEY"`

	S3Endpoint   string `env:"ALUMNIHUB_S3_ENDPOINT" envDefault:"http://127.0.0.1:9000"`
	S3Region     string `env:"ALUMNIHUB_S3_REGION" envDefault:"us-east-1"`
	S3Bucket     string `env:"ALUMNIHUB_S3_BUCKET" envDefault:"avatar"`
	S3AccessKey  string `env:"ALUMNIHUB_S3_ACCESS_KEY"`
	S3SecretKey  string `env:"ALUMNIHUB_S3_SECRET_KEY"`
	PublicBucket bool   `env:"ALUMNIHUB_S3_PUBLIC_BUCKET" envDefault:"true"`

	SignedURLTTL time.Duration `env:"ALUMNIHUB_SIGNED_URL_TTL" envDefault:"1h"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
