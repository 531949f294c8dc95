package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Issuer         string        // Optional: issuer claim for session tokens (default: overtime)
	SessionTTL     time.Duration // Optional: session token lifetime (default: 12h)
	SessionKeyFile string        // Optional: path to Ed25519 PKCS8 PEM key file (default: ./session.pem)

	DatabaseFile string // Optional: path to SQLite database file (default: ./overtime.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	RedisAddr     string        // Optional: Redis address for the dashboard cache; empty disables caching
	RedisPassword string        // Optional
	RedisDB       int           // Optional (default: 0)
	DashboardTTL  time.Duration // Optional: dashboard cache TTL (default: 1m)

	HiddenUsernames []string // Optional: comma-separated accounts hidden from the admin dashboard

	AdminUsername string // Optional: initial admin created when the user table is empty
	AdminName     string // Optional: display name for the initial admin
	AdminPassword string // Optional: password for the initial admin

	SecureCookies bool // Optional: mark the session cookie Secure (default: true outside dev)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:         getEnvOrDefault("OVERTIME_ISSUER", "overtime"),
		SessionTTL:     getEnvDurationOrDefault("OVERTIME_SESSION_TTL", 12*time.Hour),
		SessionKeyFile: getEnvOrDefault("OVERTIME_SESSION_KEY_FILE", "session.pem"),
		DatabaseFile:   getEnvOrDefault("OVERTIME_DATABASE_FILE", "overtime.db"),
		PepperFile:     getEnvOrDefault("OVERTIME_PEPPER_FILE", "pepper"),

		RedisAddr:     os.Getenv("OVERTIME_REDIS_ADDR"), // Optional: empty means no cache
		RedisPassword: os.Getenv("OVERTIME_REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("OVERTIME_REDIS_DB", 0),
		DashboardTTL:  getEnvDurationOrDefault("OVERTIME_DASHBOARD_TTL", time.Minute),

		AdminUsername: os.Getenv("OVERTIME_ADMIN_USERNAME"),
		AdminName:     getEnvOrDefault("OVERTIME_ADMIN_NAME", "Administrator"),
		AdminPassword: os.Getenv("OVERTIME_ADMIN_PASSWORD"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if hidden := os.Getenv("OVERTIME_HIDDEN_USERNAMES"); hidden != "" {
		for _, name := range strings.Split(hidden, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.HiddenUsernames = append(cfg.HiddenUsernames, name)
			}
		}
	}

	// Local dev runs on plain http, everything else assumes TLS termination
	cfg.SecureCookies = cfg.Env != "dev"
	if v := os.Getenv("OVERTIME_SECURE_COOKIES"); v != "" {
		cfg.SecureCookies = v == "true" || v == "1"
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
