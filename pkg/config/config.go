package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	GeminiAPIKey string
	GeminiModel  string
	AppEnv       string
	IsProduction bool
	// IsGeminiEnabled is a flag to enable/disable Gemini API usage (enum: "1" or "0")
	IsGeminiEnabled bool

	Port         string
	DatabasePath string

	// runtime tunables
	RateLimitWindowSeconds  int
	RateLimitCapacity       int
	AnnouncementCacheTTLSec int
)

// loadAppEnv: only loads .env outside production; a missing file is fine
// (tests and bare environments run on host env alone).
func loadAppEnv() {
	AppEnv = os.Getenv("APP_ENV")

	// do not load .env file in production
	if AppEnv == "production" {
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}
}

func init() {
	loadAppEnv()

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	GeminiModel = os.Getenv("GEMINI_MODEL")

	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "" {
		AppEnv = "development"
	}
	IsProduction = AppEnv == "production"

	// IS_GEMINI_ENABLED: "1" for enabled, anything else false
	IsGeminiEnabled = os.Getenv("IS_GEMINI_ENABLED") == "1"

	// default model if not provided; can be overridden via GEMINI_MODEL env
	if GeminiModel == "" {
		GeminiModel = "gemini-2.0-flash"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	DatabasePath = os.Getenv("DATABASE_PATH")
	if DatabasePath == "" {
		DatabasePath = "app.db"
	}

	// Tunables with defaults
	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 30)
	AnnouncementCacheTTLSec = atoiOr(os.Getenv("ANNOUNCEMENT_CACHE_TTL_SECONDS"), 30)

	// Log important config values to help debug environment
	log.Printf("[config] AppEnv=%s IsProduction=%v", AppEnv, IsProduction)
	log.Printf("[config] IsGeminiEnabled=%v GeminiAPIKeyPresent=%v", IsGeminiEnabled, GeminiAPIKey != "")
	log.Printf("[config] GeminiModel=%s", GeminiModel)
	log.Printf("[config] RateLimit window=%ds capacity=%d cacheTTL=%ds",
		RateLimitWindowSeconds, RateLimitCapacity, AnnouncementCacheTTLSec)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
