package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	SpacesKey      string
	SpacesSecret   string
	SpacesRegion   string
	SpacesBucket   string
	SpacesEndpoint string

	GenModel string

	// MaxUploadBytes caps the direct multipart path; MaxStagedBytes caps
	// files staged through object storage.
	MaxUploadBytes int64
	MaxStagedBytes int64

	// RetainUploads keeps the raw blob in storage after a successful
	// extraction. When false the object is deleted best-effort.
	RetainUploads bool
}

// LoadConfig loads the environment variables and returns the config.
func LoadConfig() *Config {

	_ = godotenv.Load()

	region := getEnv("DO_SPACES_REGION", "nyc3")

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		SpacesKey:      getEnv("DO_SPACES_KEY", ""),
		SpacesSecret:   getEnv("DO_SPACES_SECRET", ""),
		SpacesRegion:   region,
		SpacesBucket:   getEnv("DO_SPACES_BUCKET", "vet-ai-files"),
		SpacesEndpoint: getEnv("DO_SPACES_ENDPOINT", fmt.Sprintf("https://%s.digitaloceanspaces.com", region)),
		GenModel:       getEnv("GEN_MODEL", "gemini-1.5-flash"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 50<<20),
		MaxStagedBytes: getEnvInt64("MAX_STAGED_BYTES", 500<<20),
		RetainUploads:  getEnvBool("RETAIN_UPLOADS", true),
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt64(key string, def int64) int64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("WARN: %s=%q not a bool, using default %t", key, v, def)
		return def
	}
	return b
}
