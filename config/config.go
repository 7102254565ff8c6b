package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AWS      AWSConfig
	Uploads  UploadConfig
	Email    EmailConfig
	Login    []Credential
	LogLevel string
	Metrics  bool
	CacheTTL int // seconds the download catalog stays cached in Redis
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string // if set, used as-is (e.g. postgres://localhost:5432/intranet?sslmode=disable)
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
	// Mode is "pool" or "single". Single keeps one supervised connection.
	Mode              string
	ReconnectDelaySec int
	HealthCheckSec    int
}

// RedisConfig holds Redis connection settings. Empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AWSConfig holds AWS credentials and the uploads bucket. Empty bucket keeps uploads on disk.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	UploadsBucket   string
}

// UploadConfig controls where form attachments are written and served from.
type UploadConfig struct {
	Dir       string
	URLPrefix string
	MaxMB     int
}

// EmailConfig for the SMTP relay.
type EmailConfig struct {
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	From       string
	To         string
	UseTLS     bool
	TimeoutSec int
}

// Credential is one organization login pair.
type Credential struct {
	Codigo   string
	Nombre   string
	User     string
	Password string
}

// organizations lists the login codes in lookup order with their display names.
var organizations = []struct {
	Codigo string
	Nombre string
}{
	{"AA1681", "Unión Caribe - Aruba"},
	{"AA1832", "Unión Caribe - Curazao"},
	{"AD3235", "Unión Caribe - Sint Maarten"},
	{"ZZ2006", "Administrador"},
}

// DSN returns the PostgreSQL connection string.
// If DatabaseConfig.URL is set (e.g. DATABASE_URL env), it is used as-is; otherwise built from components.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()      // .env
	_ = godotenv.Load("env") // env (no leading dot)

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "3000"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL:               getEnv("DATABASE_URL", ""),
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnv("DB_PORT", "5432"),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", "postgres"),
			DBName:            getEnv("DB_NAME", "intranet"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvInt("DB_MAX_CONNS", 10)),
			Mode:              strings.ToLower(getEnv("DB_MODE", "pool")),
			ReconnectDelaySec: getEnvInt("DB_RECONNECT_DELAY_SEC", 2),
			HealthCheckSec:    getEnvInt("DB_HEALTHCHECK_SEC", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			UploadsBucket:   getEnv("AWS_S3_UPLOADS_BUCKET", ""),
		},
		Uploads: UploadConfig{
			Dir:       getEnv("UPLOAD_DIR", "uploads"),
			URLPrefix: getEnv("UPLOAD_URL_PREFIX", "/uploads"),
			MaxMB:     getEnvInt("UPLOAD_MAX_MB", 10),
		},
		Email: EmailConfig{
			SMTPHost:   getEnv("SMTP_HOST", ""),
			SMTPPort:   getEnvInt("SMTP_PORT", 587),
			SMTPUser:   getEnv("SMTP_USER", ""),
			SMTPPass:   getEnv("SMTP_PASS", ""),
			From:       getEnv("SMTP_FROM", ""),
			To:         getEnv("SMTP_TO", ""),
			UseTLS:     getEnvBool("SMTP_TLS", false),
			TimeoutSec: getEnvInt("SMTP_TIMEOUT_SEC", 10),
		},
		Login:    loadCredentials(),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Metrics:  getEnvBool("METRICS_ENABLED", true),
		CacheTTL: getEnvInt("DOWNLOADS_CACHE_TTL_SEC", 300),
	}

	if cfg.Database.Mode != "pool" && cfg.Database.Mode != "single" {
		return nil, fmt.Errorf("invalid DB_MODE %q: use pool or single", cfg.Database.Mode)
	}
	return cfg, nil
}

func loadCredentials() []Credential {
	out := make([]Credential, 0, len(organizations))
	for _, org := range organizations {
		out = append(out, Credential{
			Codigo:   org.Codigo,
			Nombre:   org.Nombre,
			User:     os.Getenv("USER_" + org.Codigo),
			Password: os.Getenv("PASS_" + org.Codigo),
		})
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// SplitTrim splits a separated list and drops empty entries.
func SplitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, sep) {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
