package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is read from the environment. A .env file in the working
// directory is loaded first when present.
type Config struct {
	TableName        string `koanf:"table_name" validate:"required"`
	Collection       string `koanf:"collection" validate:"required"`
	LogLevel         string `koanf:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat        string `koanf:"log_format" validate:"oneof=json console"`
	DynamoDBEndpoint string `koanf:"dynamodb_endpoint" validate:"omitempty,url"`
	HTTPAddr         string `koanf:"http_addr" validate:"omitempty,hostname_port"`
}

// envKeys lists the variables the service reads.
var envKeys = map[string]bool{
	"TABLE_NAME":        true,
	"COLLECTION":        true,
	"LOG_LEVEL":         true,
	"LOG_FORMAT":        true,
	"DYNAMODB_ENDPOINT": true,
	"HTTP_ADDR":         true,
}

func defaultConfig() *Config {
	return &Config{
		Collection: "books",
		LogLevel:   "info",
		LogFormat:  "json",
	}
}

// loadConfig maps the known environment variables onto a Config and
// validates the result. Unset or empty variables keep their defaults.
func loadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if !envKeys[key] || value == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// newLogger builds the service logger on w.
func newLogger(cfg *Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// bootstrapLogger reports failures that happen before the config is known.
func bootstrapLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
