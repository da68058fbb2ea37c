package config

import (
	"fmt"
	"os"
	"strings"
)

// Config aggregates the gateway's configuration.
type Config struct {
	Server ServerConfig
	OpenAI OpenAIConfig
	DB     DBConfig
}

// Load reads configuration from environment variables. The required set
// mirrors the original deployment schema.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	openai, err := loadOpenAIConfig()
	if err != nil {
		return nil, err
	}

	db, err := loadDBConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, OpenAI: openai, DB: db}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":3000" or "127.0.0.1:3000" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// OpenAIConfig holds the realtime provider settings. TokenVoice is the
// voice requested when minting a credential; SessionVoice is the one
// selected during connection negotiation.
type OpenAIConfig struct {
	APIKey       string
	Model        string
	TokenVoice   string
	SessionVoice string
}

func loadOpenAIConfig() (OpenAIConfig, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return OpenAIConfig{}, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return OpenAIConfig{
		APIKey:       apiKey,
		Model:        getEnvOrDefault("OPENAI_REALTIME_MODEL", "gpt-4o-realtime-preview-2024-12-17"),
		TokenVoice:   getEnvOrDefault("OPENAI_TOKEN_VOICE", "verse"),
		SessionVoice: getEnvOrDefault("OPENAI_SESSION_VOICE", "coral"),
	}, nil
}

// DBConfig describes the Postgres connection for the usuarios lookup.
type DBConfig struct {
	User     string
	Host     string
	Database string
	Password string
	Port     string
	SSLMode  string
}

func loadDBConfig() (DBConfig, error) {
	cfg := DBConfig{
		User:     strings.TrimSpace(os.Getenv("PG_USER")),
		Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
		Database: strings.TrimSpace(os.Getenv("PG_DATABASE")),
		Password: os.Getenv("PG_PASSWORD"),
		Port:     strings.TrimSpace(os.Getenv("PG_PORT")),
		SSLMode:  getEnvOrDefault("PG_SSLMODE", "require"),
	}

	var missing []string
	for _, kv := range []struct{ key, val string }{
		{"PG_USER", cfg.User},
		{"PG_HOST", cfg.Host},
		{"PG_DATABASE", cfg.Database},
		{"PG_PASSWORD", cfg.Password},
		{"PG_PORT", cfg.Port},
	} {
		if kv.val == "" {
			missing = append(missing, kv.key)
		}
	}
	if len(missing) > 0 {
		return DBConfig{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// DSN renders the lib/pq connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
