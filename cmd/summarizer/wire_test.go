package main

import (
	"context"
	"errors"
	"testing"

	"github.com/lamb-russell/transcript-summary-ai/internal/config"
	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Models: config.ModelsConfig{Map: "gpt-3.5-turbo", Reduce: "gpt-4", APIKeyEnv: "TSA_WIRE_TEST_KEY"},
		Paths:  config.PathsConfig{Input: t.TempDir(), Output: t.TempDir()},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestBuildProcessor(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		mutate     func(cfg *config.Config)
		wantConfig bool
	}{
		{name: "ok", key: "sk-test"},
		{name: "missing api key", key: "", wantConfig: true},
		{
			name:       "unknown tokenizer model",
			key:        "sk-test",
			mutate:     func(cfg *config.Config) { cfg.Chunking.TokenizerModel = "not-a-model" },
			wantConfig: true,
		},
		{
			name: "remote enabled without credentials",
			key:  "sk-test",
			mutate: func(cfg *config.Config) {
				cfg.Output.Remote.Enabled = true
				cfg.Output.Remote.CredentialsEnv = "TSA_WIRE_TEST_GOOGLE"
			},
			wantConfig: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TSA_WIRE_TEST_KEY", tt.key)
			t.Setenv("TSA_WIRE_TEST_GOOGLE", "")
			cfg := testConfig(t)
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			proc, err := buildProcessor(context.Background(), cfg, logger.New("error", "text"))

			var cerr *config.ConfigurationError
			if tt.wantConfig {
				if !errors.As(err, &cerr) {
					t.Errorf("buildProcessor() error = %v, want *ConfigurationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildProcessor() error = %v", err)
			}
			if proc == nil {
				t.Error("buildProcessor() returned a nil processor")
			}
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{Paths: config.PathsConfig{Input: root + "/in/nested", Output: root + "/out"}}
	if err := ensureDirectories(cfg); err != nil {
		t.Fatalf("ensureDirectories() error = %v", err)
	}
}
