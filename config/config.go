package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	AllowOrigins string
	LogLevel     string
	LogFile      string
}

// ClientConfig holds the defaults for the regform client. Command line flags override them.
type ClientConfig struct {
	ServerURL string
	CachePath string
	APIToken  string
	JWTSecret string
	Timeout   time.Duration
	PageSize  int
}

var (
	AppConfig Config
)

func LoadConfig() {
	loadDotEnv()

	AppConfig = Config{
		Port:         getEnvOrDefault("PORT", "5000"),
		DBPath:       getEnvOrDefault("DB_PATH", "employees.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AllowOrigins: getEnvOrDefault("ALLOW_ORIGINS", "*"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:      os.Getenv("LOG_FILE"),
	}
}

func LoadClientConfig() ClientConfig {
	loadDotEnv()

	return ClientConfig{
		ServerURL: getEnvOrDefault("REGISTRY_URL", "http://localhost:5000"),
		CachePath: getEnvOrDefault("CACHE_PATH", "regform.db"),
		APIToken:  os.Getenv("API_TOKEN"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Timeout:   getDurationOrDefault("SUBMIT_TIMEOUT", 10*time.Second),
		PageSize:  getIntOrDefault("PAGE_SIZE", 10),
	}
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
