package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Twilio   TwilioConfig

	MaxActiveSessions int
	ProfileCacheTTL   time.Duration
	PhoneLockTTL      time.Duration
}

// DatabaseConfig describes the Postgres connection and its pool.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig is left with an empty Host when Redis is not used.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

// Enabled reports whether SMS delivery through Twilio is configured.
func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the process environment into a Config.
func Load() Config {
	env := GetEnv("ENV", "development")
	return Config{
		Port:           GetEnv("PORT", "3000"),
		Env:            env,
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		AllowedOrigins: allowedOrigins(env),
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "otpauth"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", ""),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:    os.Getenv("JWT_SECRET"),
			ExpiresIn: GetDurationEnv("JWT_EXPIRES_IN", 30*24*time.Hour),
		},
		Twilio: TwilioConfig{
			AccountSID: GetEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  GetEnv("TWILIO_AUTH_TOKEN", ""),
			From:       GetEnv("TWILIO_SMS_FROM", ""),
		},
		MaxActiveSessions: GetIntEnv("MAX_ACTIVE_SESSIONS", 3),
		ProfileCacheTTL:   GetDurationEnv("PROFILE_CACHE_TTL", 10*time.Minute),
		PhoneLockTTL:      GetDurationEnv("PHONE_LOCK_TTL", 5*time.Second),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("invalid duration for %s: %q, using default %s", key, val, defaultVal)
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// IsDevelopment checks if the app runs in development mode.
func IsDevelopment() bool {
	return GetEnv("ENV", "development") == "development"
}

func allowedOrigins(env string) []string {
	switch env {
	case "production":
		raw := GetEnv("ALLOWED_ORIGINS", "")
		if raw == "" {
			return nil
		}
		origins := strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return origins
	case "test":
		return []string{"http://localhost:3000"}
	default:
		return []string{"http://localhost:3000", "http://localhost:3001"}
	}
}
