package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Share link configuration
	ShareRateLimitMax    int64
	ShareRateLimitWindow time.Duration
	// PDF rendering configuration
	PDFRenderer      string // "chromium" or "wkhtmltopdf"
	PDFRenderTimeout time.Duration
	RodBrowserBin    string
	WkhtmltopdfBin   string
}

func LoadConfig() (*Config, error) {
	// Load .env file, ignored in production where no file exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Strip the trailing slash to avoid double slashes in derived URLs
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Share link configuration
		ShareRateLimitMax:    int64(getEnvInt("SHARE_RATE_LIMIT_MAX", 10)),
		ShareRateLimitWindow: time.Duration(getEnvInt("SHARE_RATE_LIMIT_WINDOW_MINUTES", 60)) * time.Minute,
		// PDF rendering configuration
		PDFRenderer:      getEnv("PDF_RENDERER", "chromium"),
		PDFRenderTimeout: time.Duration(getEnvInt("PDF_RENDER_TIMEOUT_SECONDS", 30)) * time.Second,
		RodBrowserBin:    getEnv("ROD_BROWSER_BIN", ""),
		WkhtmltopdfBin:   getEnv("WKHTMLTOPDF_BIN", "wkhtmltopdf"),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
