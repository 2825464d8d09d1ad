// Package config はアプリケーション設定を環境変数から読み込みます。
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定値です。
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	JWTKey     string
	EncryptKey string

	AppURL string

	MailHost     string
	MailPort     int
	MailUser     string
	MailPassword string
	MailDevMode  bool

	RunMigrations bool
}

// Load は.envとシステム環境変数から設定を構築します。
// .envが存在しない場合はシステム環境変数のみを使用します。
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		RedisAddr:     os.Getenv("REDIS_HOST") + ":" + getenv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      durationEnv("CACHE_TTL", 5*time.Minute),
		JWTKey:        os.Getenv("JWT_KEY"),
		EncryptKey:    os.Getenv("ENCRYPT_KEY"),
		AppURL:        getenv("APP_URL", "http://localhost:3000"),
		MailHost:      os.Getenv("MAIL_HOST"),
		MailPort:      intEnv("MAIL_PORT", 587),
		MailUser:      os.Getenv("MAIL_USER"),
		MailPassword:  os.Getenv("MAIL_PASSWORD"),
		MailDevMode:   os.Getenv("SERVER_TYPE") != "production",
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}

	// 開発中の注意喚起
	if cfg.JWTKey == "" {
		slog.Warn("JWT_KEY is not set. Set a strong secret in production.")
	}
	if cfg.EncryptKey == "" {
		slog.Warn("ENCRYPT_KEY is not set. Set a strong secret in production.")
	}

	return cfg
}

// getenv は環境変数を取得し、未設定ならフォールバック値を返します。
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// intEnv は整数の環境変数を取得します。不正な値はフォールバックします。
func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer environment variable", "key", key, "value", v)
		return fallback
	}
	return n
}

// durationEnv は期間の環境変数を取得します。不正な値はフォールバックします。
func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration environment variable", "key", key, "value", v)
		return fallback
	}
	return d
}
