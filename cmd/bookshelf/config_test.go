package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("TABLE_NAME", "books-table")
		t.Setenv("COLLECTION", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")
		t.Setenv("DYNAMODB_ENDPOINT", "")
		t.Setenv("HTTP_ADDR", "")

		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want := defaultConfig()
		want.TableName = "books-table"
		if *cfg != *want {
			t.Errorf("Expected %+v, got %+v", want, cfg)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("TABLE_NAME", "books-table")
		t.Setenv("COLLECTION", "novels")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "console")
		t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
		t.Setenv("HTTP_ADDR", "localhost:8080")

		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.TableName != "books-table" || cfg.Collection != "novels" {
			t.Errorf("Unexpected config %+v", cfg)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "console" {
			t.Errorf("Unexpected log settings %+v", cfg)
		}
		if cfg.DynamoDBEndpoint != "http://localhost:8000" || cfg.HTTPAddr != "localhost:8080" {
			t.Errorf("Unexpected endpoints %+v", cfg)
		}
	})

	t.Run("missing table name", func(t *testing.T) {
		t.Setenv("TABLE_NAME", "")

		if _, err := loadConfig(); err == nil {
			t.Error("Expected missing TABLE_NAME to fail")
		}
	})

	t.Run("invalid log format", func(t *testing.T) {
		t.Setenv("TABLE_NAME", "books-table")
		t.Setenv("LOG_FORMAT", "xml")

		if _, err := loadConfig(); err == nil {
			t.Error("Expected invalid LOG_FORMAT to fail")
		}
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultConfig()
	cfg.LogLevel = "warn"

	logger := newLogger(cfg, &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Str("bookId", "B1").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %s", lines[0])
	}
	if entry["message"] != "shown" || entry["bookId"] != "B1" {
		t.Errorf("Unexpected entry %v", entry)
	}
}
