package app

import (
	"os"
	"testing"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	// Note: LogLevel may be empty (triggers precedence logic in logger.go)
	// LogFormat should have a default
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.LogOutput == "" {
		t.Error("LogOutput not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	oldVerbose := os.Getenv("FILASYNC_VERBOSE")
	oldInput := os.Getenv("FILASYNC_INPUT_DIR")
	defer func() {
		os.Setenv("FILASYNC_VERBOSE", oldVerbose)
		os.Setenv("FILASYNC_INPUT_DIR", oldInput)
	}()

	os.Setenv("FILASYNC_VERBOSE", "true")
	os.Setenv("FILASYNC_INPUT_DIR", "/tmp/presets")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Verbose {
		t.Error("FILASYNC_VERBOSE environment variable not loaded")
	}
	if config.InputDir != "/tmp/presets" {
		t.Errorf("InputDir = %s, want /tmp/presets", config.InputDir)
	}
}

// TestConfig_LogLevelEnv verifies the LOG_LEVEL environment variable.
func TestConfig_LogLevelEnv(t *testing.T) {
	oldLevel := os.Getenv("LOG_LEVEL")
	defer os.Setenv("LOG_LEVEL", oldLevel)

	os.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}
}

// TestConfig_UpdateFromFlags verifies flag values take precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "error")

	if !config.Verbose {
		t.Error("Verbose flag not applied")
	}
	if config.Quiet {
		t.Error("Quiet flag should be false")
	}
	if !config.NoColor {
		t.Error("NoColor flag not applied")
	}
	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want error", config.LogLevel)
	}

	// Empty flag level keeps the existing value.
	config.UpdateFromFlags(false, false, false, "")
	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want error after empty flag", config.LogLevel)
	}
}
