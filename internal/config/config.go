package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Process-wide signing key. Loaded once, injected everywhere, never logged.
	JWTSecret string

	// Admin sessions are shorter-lived than user sessions.
	AdminTokenTTLMinutes int
	UserTokenTTLMinutes  int

	// Optional bootstrap admin account created at startup.
	AdminName     string
	AdminEmail    string
	AdminPassword string

	CORSOrigins  []string
	OTLPEndpoint string
}

func Load() Config {
	// .env is a dev convenience; a missing file is fine.
	_ = godotenv.Load()

	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET_TOKEN", ""),

		AdminTokenTTLMinutes: getEnvInt("ADMIN_TOKEN_TTL_MINUTES", 60),
		UserTokenTTLMinutes:  getEnvInt("USER_TOKEN_TTL_MINUTES", 120),

		AdminName:     getEnv("ADMIN_NAME", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		CORSOrigins:  []string{getEnv("CORS_ORIGIN", "http://localhost:5173")},
		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
	}
}

func (c Config) AdminTokenTTL() time.Duration {
	return time.Duration(c.AdminTokenTTLMinutes) * time.Minute
}

func (c Config) UserTokenTTL() time.Duration {
	return time.Duration(c.UserTokenTTLMinutes) * time.Minute
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "netflix")
	pass := getEnv("DB_PASSWORD", "netflix")
	name := getEnv("DB_NAME", "netflix")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}
