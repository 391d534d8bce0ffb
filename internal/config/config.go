package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // あれば最優先
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	JWTSecret string // JWT署名シークレット

	// 決済ゲートウェイのシークレット（署名検証用）。
	// key idは署名に関与しないのでサーバー側では持たない。
	PaymentSecret string

	// 確認メール・通知メール
	SMTPHost   string
	SMTPPort   int
	MailFrom   string
	AdminEmail string

	FrontendURL string // 確認リンクの生成に使う
	GoEnv       string // dev/prod
}

// Loadは環境変数から読み込む
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "app"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		PaymentSecret: os.Getenv("PAYMENT_KEY_SECRET"),

		SMTPHost:   getenv("SMTP_HOST", "localhost"),
		MailFrom:   getenv("MAIL_FROM", "noreply@localhost"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),

		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),
		GoEnv:       getenv("GO_ENV", "dev"),
	}

	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cfg.PostgresPort = pgPort

	smtpPort, err := atoiDefault("SMTP_PORT", 25)
	if err != nil {
		return Config{}, err
	}
	cfg.SMTPPort = smtpPort

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.PaymentSecret == "" {
		return Config{}, fmt.Errorf("PAYMENT_KEY_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
