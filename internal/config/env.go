package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; system-wide environment still applies.
func LoadEnv() error {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("error loading %s file: %w", envPath, err)
		}
		fmt.Printf("Loaded environment variables from %s\n", envPath)
		break
	}
	return nil
}

// GetOpenAIKey returns the OpenAI API key from the environment, with a
// basic format check so a mangled key fails before the first request.
func GetOpenAIKey() (string, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is required for the openai engine - set it in the environment or a .env file")
	}
	if !strings.HasPrefix(apiKey, "sk-") {
		return "", fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}
	if len(apiKey) < 20 {
		return "", fmt.Errorf("invalid OPENAI_API_KEY format: too short")
	}
	return apiKey, nil
}

// InitializeConfig is the process entry point for configuration: it loads
// the .env overlay before any command reads the environment.
func InitializeConfig() error {
	if err := LoadEnv(); err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	return nil
}
