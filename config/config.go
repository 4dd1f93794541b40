package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port int `env:"PORT" envDefault:"3000"`

	OpenAIKey     string `env:"OPENAI_API_KEY,required"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`

	StaticDir string `env:"STATIC_DIR" envDefault:"public"`
	UploadDir string `env:"UPLOAD_DIR" envDefault:"public/uploads"`

	AuthUsername string `env:"AUTH_USERNAME" envDefault:"admin"`
	AuthPassword string `env:"AUTH_PASSWORD" envDefault:"change-this-password"`
	JWTSecret    string `env:"JWT_SECRET" envDefault:"your-secret-key-change-this"`

	// Conversation storage: "memory" (default) or "dynamodb".
	StoreBackend   string `env:"STORE_BACKEND" envDefault:"memory"`
	DynamoEndpoint string `env:"DYNAMODB_ENDPOINT"`
	DynamoRegion   string `env:"DYNAMODB_REGION" envDefault:"us-east-1"`
	DynamoTable    string `env:"DYNAMODB_TABLE" envDefault:"Conversations"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
