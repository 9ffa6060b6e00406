package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	StaffDB1 StaffDBConfig
	StaffDB2 StaffDBConfig
	JWT      JWTConfig
	App      AppConfig
	HR       HRConfig
	ADAuth   ADAuthConfig
	Geocode  GeocodeConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// StaffDBConfig points at one of the two read-only staff directory databases.
type StaffDBConfig struct {
	URL string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	Expiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// HRConfig holds the single HR account credential. The password is stored as
// a bcrypt hash, never plaintext.
type HRConfig struct {
	Username     string
	PasswordHash string
}

// ADAuthConfig points at the Active Directory credential-verification service.
type ADAuthConfig struct {
	URL     string
	Timeout string
}

type GeocodeConfig struct {
	BaseURL   string
	UserAgent string
}

func Load() (*Config, error) {
	// Missing .env is fine in production; env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "presence"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.StaffDB1 = StaffDBConfig{URL: getEnv("STAFF_DB1_URL", "")}
	config.StaffDB2 = StaffDBConfig{URL: getEnv("STAFF_DB2_URL", "")}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Kolkata"),
		AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:     getEnv("JWT_SECRET_KEY", ""),
		Expiration: getEnv("JWT_EXPIRATION_TIME", "720h"),
	}

	config.HR = HRConfig{
		Username:     getEnv("HR_USERNAME", "HRUser"),
		PasswordHash: getEnv("HR_PASSWORD_HASH", ""),
	}

	config.ADAuth = ADAuthConfig{
		URL:     getEnv("AD_AUTH_URL", ""),
		Timeout: getEnv("AD_AUTH_TIMEOUT", "10s"),
	}

	config.Geocode = GeocodeConfig{
		BaseURL:   getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		UserAgent: getEnv("GEOCODE_USER_AGENT", "PresenceBackend/1.0"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.StaffDB1.URL == "" {
		return fmt.Errorf("STAFF_DB1_URL is required")
	}
	if c.StaffDB2.URL == "" {
		return fmt.Errorf("STAFF_DB2_URL is required")
	}
	if c.HR.PasswordHash == "" {
		return fmt.Errorf("HR_PASSWORD_HASH is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
