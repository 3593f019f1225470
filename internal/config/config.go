package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is built once in main and
// passed by reference to every component; nothing else reads the environment.
type Config struct {
	ServerPort     int
	DatabasePath   string
	JWTSecret      string
	AccessTokenTTL time.Duration
	CountyCSVPath  string
	CountyMapJSON  string // optional JSON fallback for the county directory
	SendGridAPIKey string
	FromEmail      string
	ReplyToEmail   string
	AdminToken     string
	WebDir         string
	LogLevel       string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	ttlMinutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "60"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./app.db"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		AccessTokenTTL: time.Duration(ttlMinutes) * time.Minute,
		CountyCSVPath:  getEnv("COUNTY_CSV_PATH", "ca_all_counties_fire_records_contacts_template.csv"),
		CountyMapJSON:  getEnv("COUNTY_EMAIL_MAP", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		FromEmail:      getEnv("FROM_EMAIL", "request@repo.incidentreportshub.com"),
		ReplyToEmail:   getEnv("REPLY_TO_EMAIL", "intake@repo.incidentreportshub.com"),
		AdminToken:     getEnv("ADMIN_TOKEN", "changeme"),
		WebDir:         getEnv("WEB_DIR", "./web"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
