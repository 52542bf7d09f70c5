package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DataFile        string
	Host            string
	Port            string
	MaxResults      int
	AllowedOrigins  []string
	GinMode         string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// Load .env file. In production, env variables are often set directly.
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	ginMode := strings.ToLower(getEnv("GIN_MODE", "release"))
	switch ginMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q", ginMode)
	}

	origins := getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"})
	if err := validateOrigins(origins); err != nil {
		return nil, err
	}

	return &Config{
		DataFile:        getEnv("DATA_FILE", "operadoras.csv"),
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "5000"),
		MaxResults:      getEnvInt("MAX_RESULTS", 20),
		AllowedOrigins:  origins,
		GinMode:         ginMode,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: timeout,
	}, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// validateOrigins accepts "*" or absolute http(s) origins, the forms the
// CORS middleware can serve.
func validateOrigins(origins []string) error {
	for _, o := range origins {
		if o == "*" {
			continue
		}
		u, err := url.Parse(o)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || strings.Contains(o, "*") {
			return fmt.Errorf("invalid CORS_ALLOWED_ORIGINS entry %q: want \"*\" or http(s)://host[:port]", o)
		}
	}
	return nil
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}

func getEnvList(key string, defaultValue []string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
