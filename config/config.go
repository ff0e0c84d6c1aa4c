package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// CatalogURL is fetched when set; otherwise CatalogFile is read.
	CatalogURL  string
	CatalogFile string
	// BaseOrigin prefixes relative image and product URLs.
	BaseOrigin string

	// FeaturedPriceMin is the price above which a product is featured.
	FeaturedPriceMin int64
	MaxRetries       int

	// CSVDumpPath receives the raw extracted records; empty disables it.
	CSVDumpPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "catalog"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "catalog123"),
		PostgresDB:       getEnv("POSTGRES_DB", "catalog_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		CatalogURL:  getEnv("CATALOG_URL", ""),
		CatalogFile: getEnv("CATALOG_FILE", "./site-html.txt"),
		BaseOrigin:  getEnv("BASE_ORIGIN", "https://edwardpnz.ru"),

		FeaturedPriceMin: getEnvInt64("FEATURED_PRICE_MIN", 80000),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),

		CSVDumpPath: getEnv("CSV_DUMP_PATH", "./output/raw_products.csv"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.ParseInt(val, 10, 64)
		if err == nil {
			return n
		}
	}
	return fallback
}
