// Package secrets resolves and stores the description API key.
//
// Resolution order follows the original tool: the process environment first,
// then a .env file in the working directory. Saving always targets the .env
// file; there is no OS keystore integration, so the key never leaves the
// project directory. The conversion engine itself never reads secrets - only
// the CLI wiring does.
package secrets

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeyVar is the environment variable holding the description API key.
const APIKeyVar = "OPENAI_API_KEY"

// Environment classifies where the process is running. Detection gates
// interactive prompts: containers, CI and headless sessions never prompt.
type Environment string

const (
	EnvDesktop   Environment = "desktop"
	EnvContainer Environment = "container"
	EnvCI        Environment = "ci"
	EnvHeadless  Environment = "headless"
)

// DetectEnvironment classifies the runtime environment.
//
// Checks, in order: a container marker file, CI environment variables, and
// an absent display on non-Windows systems.
func DetectEnvironment() Environment {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return EnvContainer
	}
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return EnvCI
	}
	if !isWindows() && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return EnvHeadless
	}
	return EnvDesktop
}

// ResolveAPIKey returns the description API key from the environment,
// loading .env into the process environment first if present. An empty
// return means no key is configured.
func ResolveAPIKey() string {
	// Ignore the error: a missing .env file is the common case.
	_ = godotenv.Load()
	return os.Getenv(APIKeyVar)
}

// SaveAPIKey writes the key to .env in the working directory, preserving
// any other variables already stored there.
func SaveAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("secrets: refusing to save an empty API key")
	}

	vars, err := godotenv.Read()
	if err != nil {
		// No existing .env file; start fresh.
		vars = map[string]string{}
	}
	vars[APIKeyVar] = strings.TrimSpace(key)

	if err := godotenv.Write(vars, ".env"); err != nil {
		return fmt.Errorf("secrets: write .env: %w", err)
	}
	return nil
}

// MaskAPIKey renders a key safe for display: first and last four characters
// with the middle starred out. Short keys are fully starred.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

func isWindows() bool {
	return os.PathSeparator == '\\'
}
