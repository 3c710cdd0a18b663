package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Services  ServicesConfig
	Assistant AssistantConfig
	Server    ServerConfig
}

// ServicesConfig holds external service API keys and configuration
type ServicesConfig struct {
	VapiAPIKey    string
	VapiBaseURL   string
	OpenAIAPIKey  string
	WebhookSecret string
}

// AssistantConfig holds the identity of the voice assistant this service operates
type AssistantConfig struct {
	AssistantID string
	Name        string
	BankName    string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	// Services configuration
	var err error
	if cfg.Services.VapiAPIKey, err = requireEnv("VAPI_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Services.VapiBaseURL = getEnvWithDefault("VAPI_BASE_URL", "https://api.vapi.ai")

	// Transcript analysis degrades gracefully when the OpenAI key is absent
	cfg.Services.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	// Webhook signature check is skipped when no secret is configured
	cfg.Services.WebhookSecret = os.Getenv("WEBHOOK_SECRET")

	// Assistant configuration
	cfg.Assistant.AssistantID = os.Getenv("VAPI_ASSISTANT_ID")
	cfg.Assistant.Name = getEnvWithDefault("ASSISTANT_NAME", "Andrew")
	cfg.Assistant.BankName = getEnvWithDefault("BANK_NAME", "Bull Bank")

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
