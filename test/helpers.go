package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"

	"github.com/sandevgo/tuskvoice/internal/config"
)

// LoadRuntimeEnv loads <runtime>/.env and skips the test unless TUSK_LIVE=1,
// so live provider tests never run by accident.
func LoadRuntimeEnv(t *testing.T) {
	t.Helper()

	envFile := filepath.Join(config.GetRuntimePath(), ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			t.Fatalf("failed to load %s: %v", envFile, err)
		}
	}

	if os.Getenv("TUSK_LIVE") != "1" {
		t.Skip("set TUSK_LIVE=1 to run against the configured provider")
	}
}
