package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-resortbill/internal/config"
)

// dotEnvFile is loaded from the working directory when present.
const dotEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // RESORTBILL_CONFIG: config file name or path
	OutputDir   string        // RESORTBILL_OUTPUT_DIR: default output directory
	Timeout     time.Duration // RESORTBILL_TIMEOUT: page load timeout
	SettleDelay time.Duration // RESORTBILL_SETTLE: delay before capture
	Logo        string        // RESORTBILL_LOGO: default logo path
	AssetPath   string        // RESORTBILL_ASSET_PATH: custom template/style directory
}

// knownEnvVars lists valid RESORTBILL_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RESORTBILL_CONFIG":     true,
	"RESORTBILL_OUTPUT_DIR": true,
	"RESORTBILL_TIMEOUT":    true,
	"RESORTBILL_SETTLE":     true,
	"RESORTBILL_LOGO":       true,
	"RESORTBILL_ASSET_PATH": true,
}

// loadDotEnv reads .env into the process environment. Variables already
// set are never overridden. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("reading %s: %w", path, err)
}

// loadEnvConfig reads configuration from environment variables.
// Invalid or non-positive durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("RESORTBILL_CONFIG"),
		OutputDir:  getenv("RESORTBILL_OUTPUT_DIR"),
		Logo:       getenv("RESORTBILL_LOGO"),
		AssetPath:  getenv("RESORTBILL_ASSET_PATH"),
	}

	if timeout := getenv("RESORTBILL_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if settle := getenv("RESORTBILL_SETTLE"); settle != "" {
		if d, err := time.ParseDuration(settle); err == nil && d > 0 {
			cfg.SettleDelay = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized RESORTBILL_* variables.
// Helps catch typos like RESORTBILL_OUTPUTDIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "RESORTBILL_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later in buildOptions).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Logo != "" && cfg.Assets.Logo == "" {
		cfg.Assets.Logo = env.Logo
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Timeout > 0 && cfg.Export.Timeout == "" {
		cfg.Export.Timeout = env.Timeout.String()
	}
	if env.SettleDelay > 0 && cfg.Export.SettleDelay == "" {
		cfg.Export.SettleDelay = env.SettleDelay.String()
	}
}
