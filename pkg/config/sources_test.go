package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvSource(t *testing.T) {
	envSource := &EnvSource{}

	t.Run("GetString", func(t *testing.T) {
		// Test existing value
		os.Setenv("TEST_STRING", "test_value")
		defer os.Unsetenv("TEST_STRING")

		value, found := envSource.GetString("TEST_STRING")
		if !found {
			t.Error("expected to find TEST_STRING")
		}
		if value != "test_value" {
			t.Errorf("expected 'test_value', got '%s'", value)
		}

		// Test missing value
		value, found = envSource.GetString("MISSING_STRING")
		if found {
			t.Error("expected not to find MISSING_STRING")
		}
		if value != "" {
			t.Errorf("expected empty string, got '%s'", value)
		}
	})

	t.Run("GetInt", func(t *testing.T) {
		// Test valid int
		os.Setenv("TEST_INT", "42")
		defer os.Unsetenv("TEST_INT")

		value, found := envSource.GetInt("TEST_INT")
		if !found {
			t.Error("expected to find TEST_INT")
		}
		if value != 42 {
			t.Errorf("expected 42, got %d", value)
		}

		// Test invalid int
		os.Setenv("TEST_INVALID_INT", "not_a_number")
		defer os.Unsetenv("TEST_INVALID_INT")

		if _, found = envSource.GetInt("TEST_INVALID_INT"); found {
			t.Error("expected not to find valid int for TEST_INVALID_INT")
		}

		// Test missing int
		if _, found = envSource.GetInt("MISSING_INT"); found {
			t.Error("expected not to find MISSING_INT")
		}
	})
}

func TestFlagSource(t *testing.T) {
	flagSource := NewFlagSource()

	t.Run("GetString", func(t *testing.T) {
		// Test setting and getting string
		flagSource.Set("TEST_STRING", "flag_value")
		value, found := flagSource.GetString("TEST_STRING")
		if !found {
			t.Error("expected to find TEST_STRING")
		}
		if value != "flag_value" {
			t.Errorf("expected 'flag_value', got '%s'", value)
		}

		// Test empty string
		flagSource.Set("EMPTY_STRING", "")
		if _, found = flagSource.GetString("EMPTY_STRING"); found {
			t.Error("expected not to find empty string")
		}

		// Test missing key
		if _, found = flagSource.GetString("MISSING_STRING"); found {
			t.Error("expected not to find MISSING_STRING")
		}
	})

	t.Run("GetInt", func(t *testing.T) {
		// Test setting and getting int
		flagSource.Set("TEST_INT", 42)
		value, found := flagSource.GetInt("TEST_INT")
		if !found {
			t.Error("expected to find TEST_INT")
		}
		if value != 42 {
			t.Errorf("expected 42, got %d", value)
		}

		// Test wrong type
		flagSource.Set("WRONG_TYPE", "not_int")
		if _, found = flagSource.GetInt("WRONG_TYPE"); found {
			t.Error("expected not to find int for wrong type")
		}

		// Test missing key
		if _, found = flagSource.GetInt("MISSING_INT"); found {
			t.Error("expected not to find MISSING_INT")
		}
	})
}

func TestFileSource(t *testing.T) {
	writeConfig := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		return path
	}

	t.Run("json file", func(t *testing.T) {
		path := writeConfig(t, "config.json",
			`{"LOG_PATH": "/var/spool/ship", "PROBE_INTERVAL_MS": 250}`)

		fileSource, err := NewFileSource(path)
		if err != nil {
			t.Fatalf("failed to load config file: %v", err)
		}

		value, found := fileSource.GetString(KeyLogPath)
		if !found || value != "/var/spool/ship" {
			t.Errorf("expected '/var/spool/ship', got '%s' (found: %v)", value, found)
		}

		interval, found := fileSource.GetInt(KeyProbeIntervalMs)
		if !found || interval != 250 {
			t.Errorf("expected 250, got %d (found: %v)", interval, found)
		}
	})

	t.Run("yaml file", func(t *testing.T) {
		path := writeConfig(t, "config.yaml",
			"SERVER_URL: http://collector.local\nDISPATCH_INTERVAL_MS: 500\n")

		fileSource, err := NewFileSource(path)
		if err != nil {
			t.Fatalf("failed to load config file: %v", err)
		}

		value, found := fileSource.GetString(KeyServerURL)
		if !found || value != "http://collector.local" {
			t.Errorf("expected 'http://collector.local', got '%s' (found: %v)", value, found)
		}

		interval, found := fileSource.GetInt(KeyDispatchIntervalMs)
		if !found || interval != 500 {
			t.Errorf("expected 500, got %d (found: %v)", interval, found)
		}
	})

	t.Run("missing keys", func(t *testing.T) {
		path := writeConfig(t, "config.json", `{"LOG_PATH": "/tmp/ship"}`)

		fileSource, err := NewFileSource(path)
		if err != nil {
			t.Fatalf("failed to load config file: %v", err)
		}

		if _, found := fileSource.GetString(KeyServerURL); found {
			t.Error("expected not to find SERVER_URL")
		}
		if _, found := fileSource.GetInt(KeyProbeIntervalMs); found {
			t.Error("expected not to find PROBE_INTERVAL_MS")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Fatal("expected error for missing config file, got nil")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeConfig(t, "config.json", "{not json")
		if _, err := NewFileSource(path); err == nil {
			t.Fatal("expected error for malformed config file, got nil")
		}
	})
}

func TestNewFlagSource(t *testing.T) {
	flagSource := NewFlagSource()
	if flagSource == nil {
		t.Fatal("expected non-nil FlagSource")
	}
	if flagSource.values == nil {
		t.Fatal("expected non-nil values map")
	}
}

func TestFlagSourceEdgeCases(t *testing.T) {
	flagSource := NewFlagSource()

	t.Run("zero values", func(t *testing.T) {
		// Zero ints are still "found": the flag layer filters zeros
		// before they reach the source.
		flagSource.Set("ZERO_INT", 0)

		if value, found := flagSource.GetInt("ZERO_INT"); !found || value != 0 {
			t.Errorf("expected to find zero int, got %d (found: %v)", value, found)
		}
	})

	t.Run("wrong types stored", func(t *testing.T) {
		// Store wrong types and ensure they're not found
		flagSource.Set("WRONG_INT", "string_value")
		flagSource.Set("WRONG_STRING", 456)

		if _, found := flagSource.GetInt("WRONG_INT"); found {
			t.Error("expected not to find int for string value")
		}

		if _, found := flagSource.GetString("WRONG_STRING"); found {
			t.Error("expected not to find string for int value")
		}
	})
}

func TestEnvSourceEdgeCases(t *testing.T) {
	envSource := &EnvSource{}

	t.Run("empty env var", func(t *testing.T) {
		os.Setenv("EMPTY_VAR", "")
		defer os.Unsetenv("EMPTY_VAR")

		if _, found := envSource.GetString("EMPTY_VAR"); found {
			t.Error("expected not to find empty env var")
		}
	})

	t.Run("env var with spaces", func(t *testing.T) {
		os.Setenv("SPACES_VAR", "  ")
		defer os.Unsetenv("SPACES_VAR")

		if value, found := envSource.GetString("SPACES_VAR"); !found || value != "  " {
			t.Errorf("expected to find spaces, got '%s' (found: %v)", value, found)
		}
	})
}
