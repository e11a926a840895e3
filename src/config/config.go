package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoDBConnectionString string
	MongoDBDatabaseName     string
	Port                    int
	LogLevel                string
	RabbitMQHostName        string
	RabbitMQExchange        string
	SeedProducts            bool
}

func LoadConfig() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables only")
	}

	port, err := getEnvAsInt("PORT", 5000)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	config := &Config{
		MongoDBConnectionString: os.Getenv("MONGODB_URI"),
		MongoDBDatabaseName:     getEnv("MONGODB_DATABASE_NAME", "shop"),
		Port:                    port,
		LogLevel:                strings.ToLower(getEnv("LOG_LEVEL", "info")),
		RabbitMQHostName:        os.Getenv("RABBITMQ_HOSTNAME"),
		RabbitMQExchange:        getEnv("RABBITMQ_EXCHANGE", "shop_events"),
		SeedProducts:            getEnvAsBool("SEED_PRODUCTS", false),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Validate checks the values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.MongoDBConnectionString) == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.MongoDBDatabaseName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}

// BrokerEnabled reports whether order events should be published to RabbitMQ.
func (c *Config) BrokerEnabled() bool {
	return c.RabbitMQHostName != ""
}

func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt falls back only when the variable is unset; a malformed value is an error.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not an integer", key, value)
	}
	return parsed, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
