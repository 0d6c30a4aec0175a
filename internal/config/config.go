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
	Addr        string
	BackendURL  string
	CORSOrigins []string

	StorageDriver  string
	StoragePath    string
	StorageProfile string
	MongoURI       string
	MongoDatabase  string

	ChatPollInterval     time.Duration
	HTTPTimeout          time.Duration
	EnableDepartmentHead bool

	LogLevel string
	GinMode  string
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	return Config{
		Addr:        readString("PORTAL_ADDR", ":3000"),
		BackendURL:  APIBase(readString("BACKEND_URL", "http://localhost:8000")),
		CORSOrigins: readList("CORS_ORIGINS", []string{"http://localhost:3000"}),

		StorageDriver:  readString("STORAGE_DRIVER", "file"),
		StoragePath:    readString("STORAGE_PATH", "medischedule-state.json"),
		StorageProfile: readString("STORAGE_PROFILE", "default"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  readString("MONGO_DATABASE", "medischedule_portal"),

		ChatPollInterval:     readDuration("CHAT_POLL_INTERVAL", 3*time.Second),
		HTTPTimeout:          readDuration("HTTP_TIMEOUT", 15*time.Second),
		EnableDepartmentHead: readBool("ENABLE_DEPARTMENT_HEAD", false),

		LogLevel: readString("LOG_LEVEL", "info"),
		GinMode:  os.Getenv("GIN_MODE"),
	}
}

// APIBase appends the /api prefix every backend route lives under.
func APIBase(backendURL string) string {
	base := strings.TrimRight(backendURL, "/")
	if strings.HasSuffix(base, "/api") {
		return base
	}
	return base + "/api"
}

func readString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func ReadInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func readList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
