package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and passed to the wiring in main.
// Nothing below config reads the environment directly.
type Config struct {
	HTTPAddr    string
	DatabaseURL string

	JWTSecret []byte
	JWTIssuer string
	JWTTTL    time.Duration

	ResendAPIKey     string
	EmailFrom        string
	AdminNotifyEmail string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("error load env %s", err)
	}

	cfg := Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		JWTIssuer: os.Getenv("JWT_ISSUER"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		EmailFrom:        getEnv("EMAIL_FROM", "UsherHub <noreply@usherhub.app>"),
		AdminNotifyEmail: os.Getenv("ADMIN_NOTIFY_EMAIL"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@usherhub.app"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	return cfg
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s: %s", key, err)
		return fallback
	}
	return parsed
}
