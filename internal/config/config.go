package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kataras/golog"
)

type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Backend BackendConfig
	Upload  UploadConfig
	Session SessionConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level string
}

// BackendConfig points at the analysis/auth service. One base URL serves
// every endpoint.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

type UploadConfig struct {
	PlaceholderEmail string
	MaxUploadSize    int64
}

type SessionConfig struct {
	CookieName    string
	TTL           time.Duration
	SweepInterval time.Duration
	MaxSessions   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		golog.Info("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
		Backend: BackendConfig{
			URL:     strings.TrimRight(getEnv("BACKEND_URL", "http://127.0.0.1:5000"), "/"),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", "0s"),
		},
		Upload: UploadConfig{
			PlaceholderEmail: getEnv("UPLOAD_EMAIL", "test@gmail.com"),
			MaxUploadSize:    getEnvAsInt64("MAX_UPLOAD_SIZE", 10485760),
		},
		Session: SessionConfig{
			CookieName:    getEnv("SESSION_COOKIE", "resume_session"),
			TTL:           getEnvAsPositiveDuration("SESSION_TTL", "30m"),
			SweepInterval: getEnvAsPositiveDuration("SESSION_SWEEP_INTERVAL", "1m"),
			MaxSessions:   getEnvAsInt("SESSION_MAX", 500),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

// getEnvAsPositiveDuration is getEnvAsDuration for values that must be above
// zero, such as ticker intervals.
func getEnvAsPositiveDuration(key string, defaultValue string) time.Duration {
	if duration := getEnvAsDuration(key, defaultValue); duration > 0 {
		return duration
	}
	golog.Warnf("%s must be positive, using %s", key, defaultValue)
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
