package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigResolver(t *testing.T) {
	t.Run("precedence order", func(t *testing.T) {
		// Set up environment
		os.Setenv("TEST_KEY", "env_value")
		os.Setenv("ENV_ONLY", "env_value")
		defer func() {
			os.Unsetenv("TEST_KEY")
			os.Unsetenv("ENV_ONLY")
		}()

		// Set up flag source with higher precedence
		flagSource := NewFlagSource()
		flagSource.Set("TEST_KEY", "flag_value")

		// Create resolver with flag source first (higher precedence)
		resolver := NewConfigResolver(flagSource, &EnvSource{})

		// Test string resolution - flag should take precedence
		value := resolver.ResolveString("TEST_KEY", "default")
		if value != "flag_value" {
			t.Errorf("expected 'flag_value', got '%s'", value)
		}

		// Test fallback to env
		value = resolver.ResolveString("ENV_ONLY", "default")
		if value != "env_value" {
			t.Errorf("expected 'env_value', got '%s'", value)
		}

		// Test default value
		value = resolver.ResolveString("MISSING_KEY", "default")
		if value != "default" {
			t.Errorf("expected 'default', got '%s'", value)
		}
	})

	t.Run("int resolution", func(t *testing.T) {
		flagSource := NewFlagSource()
		flagSource.Set("TEST_INT", 100)

		os.Setenv("TEST_INT", "50")
		defer os.Unsetenv("TEST_INT")

		resolver := NewConfigResolver(flagSource, &EnvSource{})

		// Flag should take precedence
		value := resolver.ResolveInt("TEST_INT", 1)
		if value != 100 {
			t.Errorf("expected 100, got %d", value)
		}

		// Test default
		value = resolver.ResolveInt("MISSING_INT", 42)
		if value != 42 {
			t.Errorf("expected 42, got %d", value)
		}
	})

	t.Run("file source lowest precedence", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		content := `{"TEST_KEY": "file_value", "FILE_ONLY": "file_value"}`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		fileSource, err := NewFileSource(path)
		if err != nil {
			t.Fatalf("failed to load config file: %v", err)
		}

		os.Setenv("TEST_KEY", "env_value")
		defer os.Unsetenv("TEST_KEY")

		resolver := NewConfigResolver(&EnvSource{}, fileSource)

		// Env beats file
		if value := resolver.ResolveString("TEST_KEY", "default"); value != "env_value" {
			t.Errorf("expected 'env_value', got '%s'", value)
		}

		// File fills in what env lacks
		if value := resolver.ResolveString("FILE_ONLY", "default"); value != "file_value" {
			t.Errorf("expected 'file_value', got '%s'", value)
		}
	})
}

func TestNewConfigResolver(t *testing.T) {
	flagSource := NewFlagSource()
	envSource := &EnvSource{}

	resolver := NewConfigResolver(flagSource, envSource)
	if resolver == nil {
		t.Fatal("expected non-nil ConfigResolver")
	}
	if len(resolver.sources) != 2 {
		t.Errorf("expected 2 sources, got %d", len(resolver.sources))
	}
}

func TestConfigResolverEmptySources(t *testing.T) {
	resolver := NewConfigResolver()

	// All should return defaults when no sources
	if value := resolver.ResolveString("ANY_KEY", "default"); value != "default" {
		t.Errorf("expected 'default', got '%s'", value)
	}

	if value := resolver.ResolveInt("ANY_KEY", 42); value != 42 {
		t.Errorf("expected 42, got %d", value)
	}
}
