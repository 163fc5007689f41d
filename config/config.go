package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	JWTSecret   string
	// AuthDevBypass lets unauthenticated requests through with a simulated
	// identity. Local development only.
	AuthDevBypass bool
	// Redis Configuration (wizard session store)
	RedisURL          string
	RedisPassword     string
	WizardSessionTTL  int // minutes
	WizardStrictSteps bool
	// S3-compatible storage (MinIO in local/dev)
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	// Upload constraints
	UploadMaxSizeMB      int64
	UploadExtensions     []string
	PhotoResizeMaxPixels int
}

func LoadConfig() (*Config, error) {
	// .env is only effective locally; ignored in production when absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBUrl:         getEnv("DATABASE_URL", ""),
		FrontendURL:   strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AuthDevBypass: getEnvBool("AUTH_DEV_BYPASS", false),
		// Redis Configuration
		RedisURL:          getEnv("REDIS_URL", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		WizardSessionTTL:  getEnvInt("WIZARD_SESSION_TTL_MINUTES", 120),
		WizardStrictSteps: getEnvBool("WIZARD_STRICT_STEPS", false),
		// S3-compatible storage
		S3Endpoint:  strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3Region:    getEnv("S3_REGION", "eu-west-3"),
		S3Bucket:    getEnv("S3_BUCKET", "talentmatch-uploads"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		// Upload constraints
		UploadMaxSizeMB:      int64(getEnvInt("UPLOAD_MAX_SIZE_MB", 5)),
		UploadExtensions:     getEnvList("UPLOAD_EXTENSIONS", []string{".jpg", ".jpeg", ".png"}),
		PhotoResizeMaxPixels: getEnvInt("PHOTO_RESIZE_MAX_PIXELS", 800),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Wizard sessions will use in-memory fallback.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Authentication middleware will reject all tokens.")
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

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList returns a comma-separated environment variable or fallback if not set
func getEnvList(key string, fallback []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
