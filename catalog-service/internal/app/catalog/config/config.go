package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting of the Catalog Service.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	CORS     CORSConfig
	Stats    StatsConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig describes the PostgreSQL connection. Bootstrap makes the
// service create missing tables on startup.
type DatabaseConfig struct {
	Host      string
	Port      string
	User      string
	Password  string
	DBName    string
	SSLMode   string
	Bootstrap bool
}

// KafkaConfig configures catalog change events. With Enabled=false events are
// dropped.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// StatsConfig is the cron schedule of the catalog gauges refresher. An empty
// schedule disables it.
type StatsConfig struct {
	Schedule string
}

type LogConfig struct {
	Level        string
	LogstashAddr string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. A missing file is not an
// error; variables already set in the environment win over the file.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	bootstrap, err := getBool("DB_BOOTSTRAP", false)
	if err != nil {
		return nil, err
	}
	kafkaEnabled, err := getBool("KAFKA_ENABLED", true)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "3000"),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "5432"),
			User:      getEnv("DB_USER", "postgres"),
			Password:  getEnv("DB_PASSWORD", "postgres"),
			DBName:    getEnv("DB_NAME", "catalog"),
			SSLMode:   getEnv("DB_SSLMODE", "disable"),
			Bootstrap: bootstrap,
		},
		Kafka: KafkaConfig{
			Enabled: kafkaEnabled,
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "catalog_events"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001")),
		},
		Stats: StatsConfig{
			Schedule: getEnv("STATS_SCHEDULE", "@every 1m"),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: os.Getenv("LOGSTASH_ADDR"),
		},
	}, nil
}

// ConnString returns the postgres:// URL understood by pgxpool.
func (c *DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
