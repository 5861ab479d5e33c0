package config

import (
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Alerts   AlertsConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
}

// AlertsConfig tunes the alert rules engine.
type AlertsConfig struct {
	// DemoUserID is the identity used when a request carries no token.
	DemoUserID uuid.UUID
	// DedupWindow suppresses repeat alerts of the same (user, type,
	// related) within this lookback.
	DedupWindow time.Duration
	// StaleAfter is the age past which unread low/medium alerts are
	// reclaimed.
	StaleAfter time.Duration
	// RefreshSchedule is the cron expression for the background sweep.
	RefreshSchedule string
}

const defaultDemoUserID = "8b9f0a44-0000-4000-8000-7d6e5f4c3b2a"

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root;
	// plain environment variables work too (Docker/K8s).
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	dedupMinutes, _ := strconv.Atoi(getEnv("ALERT_DEDUP_MINUTES", "30"))
	staleDays, _ := strconv.Atoi(getEnv("ALERT_STALE_DAYS", "7"))

	demoUserID, err := uuid.Parse(getEnv("DEMO_USER_ID", defaultDemoUserID))
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "fintrack"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
		},
		Alerts: AlertsConfig{
			DemoUserID:      demoUserID,
			DedupWindow:     time.Duration(dedupMinutes) * time.Minute,
			StaleAfter:      time.Duration(staleDays) * 24 * time.Hour,
			RefreshSchedule: getEnv("ALERT_REFRESH_SCHEDULE", "*/15 * * * *"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
