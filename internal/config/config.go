package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Storefront StorefrontConfig
	Catalog    CatalogConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds the page view log database configuration.
// The log is disabled when neither DSN nor Host is set.
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	StaticDir      string
	TrustedProxies []string
}

// StorefrontConfig holds the commerce Storefront API configuration
type StorefrontConfig struct {
	StoreDomain            string
	APIVersion             string
	PublicAccessToken      string
	PrivateAccessToken     string
	StorefrontID           string
	Country                string
	Language               string
	Timeout                int
	RetryMax               int
	SessionSecret          string
	MetaobjectCollectField string
}

// CatalogConfig holds collection listing defaults
type CatalogConfig struct {
	DefaultHandle   string
	PageSize        int
	CollectionsSize int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// MockShopDomain is the demo store used when no domain is configured
const MockShopDomain = "mock.shop"

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", ""),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "storefront"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnvAsList("CORS_ALLOWED_METHODS", "GET,OPTIONS"),
			AllowedHeaders: getEnvAsList("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
			StaticDir:      getEnv("STATIC_DIR", "./public"),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES", ""),
		},
		Storefront: StorefrontConfig{
			StoreDomain:            getEnv("PUBLIC_STORE_DOMAIN", MockShopDomain),
			APIVersion:             getEnv("STOREFRONT_API_VERSION", "2024-01"),
			PublicAccessToken:      getEnv("PUBLIC_STOREFRONT_API_TOKEN", ""),
			PrivateAccessToken:     getEnv("PRIVATE_STOREFRONT_API_TOKEN", ""),
			StorefrontID:           getEnv("PUBLIC_STOREFRONT_ID", ""),
			Country:                getEnv("STOREFRONT_COUNTRY", "US"),
			Language:               getEnv("STOREFRONT_LANGUAGE", "EN"),
			Timeout:                getEnvAsInt("STOREFRONT_TIMEOUT", 15),
			RetryMax:               getEnvAsInt("STOREFRONT_RETRY_MAX", 3),
			SessionSecret:          getEnv("SESSION_SECRET", ""),
			MetaobjectCollectField: getEnv("METAOBJECT_COLLECTION_FIELD", "collection"),
		},
		Catalog: CatalogConfig{
			DefaultHandle:   getEnv("DEFAULT_COLLECTION_HANDLE", "parts"),
			PageSize:        getEnvAsInt("COLLECTION_PAGE_SIZE", 12),
			CollectionsSize: getEnvAsInt("COLLECTION_NAV_SIZE", 100),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail at request time
func (c *Config) Validate() error {
	// A real store needs a session secret; the demo store does not.
	if c.Storefront.SessionSecret == "" && c.Storefront.StoreDomain != MockShopDomain {
		return fmt.Errorf("SESSION_SECRET environment variable is not set")
	}
	if c.Catalog.PageSize < 1 || c.Catalog.PageSize > 250 {
		return fmt.Errorf("COLLECTION_PAGE_SIZE must be between 1 and 250, got %d", c.Catalog.PageSize)
	}
	if c.Catalog.CollectionsSize < 1 || c.Catalog.CollectionsSize > 250 {
		return fmt.Errorf("COLLECTION_NAV_SIZE must be between 1 and 250, got %d", c.Catalog.CollectionsSize)
	}
	return nil
}

// PageViewLogEnabled reports whether a database is configured
func (c *Config) PageViewLogEnabled() bool {
	return c.PostgreSQL.DSN != "" || c.PostgreSQL.Host != ""
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key, defaultValue string) []string {
	var list []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
