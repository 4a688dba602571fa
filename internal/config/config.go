package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	ListenHost     string
	APIBaseURL     string        // Remote report API, e.g. http://localhost:5000/api/admin
	APITimeout     time.Duration // Per-call timeout for the remote API
	LogoutTimeout  time.Duration // Upper bound for the best-effort remote logout
	StoragePath    string        // SQLite file backing the local session snapshot
	SessionKey     string        // Local storage key of the session snapshot
	FormSecret     string        // HMAC secret for form tokens; generated when empty
	Environment    string
	LiveRefresh    string // cron spec for the live feed; empty disables it
	ReportsPerPage int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		ListenHost:     getEnv("LISTEN_HOST", "127.0.0.1"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:5000/api/admin"),
		APITimeout:     getDuration("API_TIMEOUT", 15*time.Second),
		LogoutTimeout:  getDuration("LOGOUT_TIMEOUT", 5*time.Second),
		StoragePath:    getEnv("STORAGE_PATH", "./console.db"),
		SessionKey:     getEnv("SESSION_KEY", "admin_user"),
		FormSecret:     getEnv("FORM_SECRET", ""),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LiveRefresh:    getEnv("LIVE_REFRESH", "@every 30s"),
		ReportsPerPage: getInt("REPORTS_PER_PAGE", 20),
	}, nil
}

// Address is the host:port the console listens on.
func (c *Config) Address() string {
	return c.ListenHost + ":" + c.Port
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s (%q), using %s", key, value, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Invalid integer for %s (%q), using %d", key, value, fallback)
		return fallback
	}
	return n
}
