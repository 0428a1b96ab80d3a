package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	CorsOrigins string

	DBDriver      string // postgres, mysql or sqlite
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	DBIsolation   string // isolation level for reindexing transactions
	DBMaxOpenConn int

	JWTKey    string
	SaltRound int

	AdminEmail    string // bootstrap admin, created when no users exist
	AdminPassword string

	SendgridApiKey  string
	EmailSender     string
	EmailSenderName string
	LeadInbox       string // receives lead notifications

	RevalidateURL    string // frontend revalidation endpoint
	RevalidateSecret string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	PageCacheTTL     int // seconds

	OrderingAuditCron string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:        getEnv("PORT", "3000"),
		CorsOrigins: getEnv("CORS_ORIGINS", "*"),

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "rpl"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBIsolation:   strings.ToLower(getEnv("DB_ISOLATION", "serializable")),
		DBMaxOpenConn: getEnvInt("DB_MAX_OPEN_CONNS", 10),

		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		SendgridApiKey:  getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", "no-reply@localhost"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "RPL Website"),
		LeadInbox:       getEnv("LEAD_INBOX", ""),

		RevalidateURL:    getEnv("REVALIDATE_URL", ""),
		RevalidateSecret: getEnv("REVALIDATE_SECRET", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		PageCacheTTL:     getEnvInt("PAGE_CACHE_TTL", 600),

		OrderingAuditCron: getEnv("ORDERING_AUDIT_CRON", "@daily"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendgridApiKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Emails will be printed to the console.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
