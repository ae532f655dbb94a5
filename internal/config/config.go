package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Chatbot  ChatbotConfig
	LiveChat LiveChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type ChatbotConfig struct {
	GatewayURL   string
	APIKey       string
	Model        string
	ArchiveTopic string
}

// LiveChatConfig controls the pending-request sweeper. A zero PendingTTL
// disables auto-decline entirely.
type LiveChatConfig struct {
	PendingTTL    time.Duration
	SweepInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			TokenTTL: getEnvAsDuration("JWT_TOKEN_TTL", 24*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "College Portal"),
		},
		Chatbot: ChatbotConfig{
			GatewayURL:   getEnv("CHATBOT_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
			APIKey:       getEnv("CHATBOT_API_KEY", ""),
			Model:        getEnv("CHATBOT_MODEL", "google/gemini-2.5-flash"),
			ArchiveTopic: getEnv("CHATBOT_ARCHIVE_TOPIC_NAME", "CHATBOT_ARCHIVE"),
		},
		LiveChat: LiveChatConfig{
			PendingTTL:    getEnvAsDuration("LIVECHAT_PENDING_TTL", 0),
			SweepInterval: getEnvAsDuration("LIVECHAT_SWEEP_INTERVAL", time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
