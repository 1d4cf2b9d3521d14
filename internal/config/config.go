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
	ServiceName string
	ServerPort  int

	DatabaseURL string

	JWTSecret []byte
	TokenTTL  time.Duration

	// Admin provisioning. When both are set an admin account is seeded at
	// startup; the register endpoint itself never grants the admin role.
	AdminUsername string
	AdminPassword string

	KafkaBrokers []string

	LogLevel string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	cfg := &Config{
		ServiceName: EnvDefault("SERVICE_NAME", "shop-backend"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:  EnvDurationDefault("TOKEN_TTL", 12*time.Hour),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		LogLevel: os.Getenv("LOG_LEVEL"),
	}

	MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return cfg
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
