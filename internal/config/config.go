package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ListenAddr     string
	DBPath         string
	SeedSampleData bool
	CORSOrigins    []string

	LogLevel string
	LogFile  string

	// Client (labinvctl)
	Backend     string
	APIURL      string
	DataDir     string
	RedisAddr   string
	StorageKey  string
	HTTPTimeout time.Duration
}

// Load reads configuration from the environment. Variables from a .env file in
// the working directory are loaded first but never override the real
// environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		DBPath:         getEnv("DB_PATH", "/data/labinv.db"),
		SeedSampleData: getBool("SEED_SAMPLE_DATA", true),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		Backend:        getEnv("LABINV_BACKEND", "http"),
		APIURL:         getEnv("LABINV_API_URL", "http://localhost:8080"),
		DataDir:        getEnv("LABINV_DATA_DIR", "./data"),
		RedisAddr:      getEnv("LABINV_REDIS_ADDR", "localhost:6379"),
		StorageKey:     getEnv("LABINV_STORAGE_KEY", "labinv_data"),
		HTTPTimeout:    getDuration("LABINV_HTTP_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultVal)))
	if err != nil {
		return defaultVal
	}
	return b
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, defaultVal.String()))
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
