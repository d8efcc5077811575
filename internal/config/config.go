package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
	Filing FilingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for supporting-document uploads.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings for review notifications.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// FilingConfig holds domain settings for the filing pipeline.
type FilingConfig struct {
	// DefaultAssessmentYear is used when a draft is created without an
	// explicit year, in "YYYY-YY" form.
	DefaultAssessmentYear string `mapstructure:"default_assessment_year"`
}

// Load reads configuration from environment variables with the TAXSAGE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TAXSAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "taxsage")
	v.SetDefault("db.password", "taxsage_secret")
	v.SetDefault("db.name", "taxsage_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.max_lifetime", 30*time.Minute)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "taxsage")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "taxsage-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@taxsage.in")
	v.SetDefault("email.from_name", "TaxSage")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Filing defaults
	v.SetDefault("filing.default_assessment_year", "2024-25")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "TAXSAGE_SERVER_PORT",
		"server.read_timeout":            "TAXSAGE_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "TAXSAGE_SERVER_WRITE_TIMEOUT",
		"server.environment":             "TAXSAGE_SERVER_ENVIRONMENT",
		"db.host":                        "TAXSAGE_DB_HOST",
		"db.port":                        "TAXSAGE_DB_PORT",
		"db.user":                        "TAXSAGE_DB_USER",
		"db.password":                    "TAXSAGE_DB_PASSWORD",
		"db.name":                        "TAXSAGE_DB_NAME",
		"db.sslmode":                     "TAXSAGE_DB_SSLMODE",
		"db.max_open":                    "TAXSAGE_DB_MAX_OPEN",
		"db.max_idle":                    "TAXSAGE_DB_MAX_IDLE",
		"db.max_lifetime":                "TAXSAGE_DB_MAX_LIFETIME",
		"jwt.secret":                     "TAXSAGE_JWT_SECRET",
		"jwt.access_expiry":              "TAXSAGE_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "TAXSAGE_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "TAXSAGE_JWT_ISSUER",
		"s3.region":                      "TAXSAGE_S3_REGION",
		"s3.bucket":                      "TAXSAGE_S3_BUCKET",
		"s3.endpoint":                    "TAXSAGE_S3_ENDPOINT",
		"s3.access_key":                  "TAXSAGE_S3_ACCESS_KEY",
		"s3.secret_key":                  "TAXSAGE_S3_SECRET_KEY",
		"s3.max_file_size_mb":            "TAXSAGE_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":              "TAXSAGE_S3_PRESIGN_EXPIRY",
		"log.level":                      "TAXSAGE_LOG_LEVEL",
		"log.format":                     "TAXSAGE_LOG_FORMAT",
		"cors.allowed_origins":           "TAXSAGE_CORS_ALLOWED_ORIGINS",
		"email.provider":                 "TAXSAGE_EMAIL_PROVIDER",
		"email.region":                   "TAXSAGE_EMAIL_REGION",
		"email.from_address":             "TAXSAGE_EMAIL_FROM_ADDRESS",
		"email.from_name":                "TAXSAGE_EMAIL_FROM_NAME",
		"email.frontend_url":             "TAXSAGE_EMAIL_FRONTEND_URL",
		"filing.default_assessment_year": "TAXSAGE_FILING_DEFAULT_ASSESSMENT_YEAR",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TAXSAGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TAXSAGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		MaxLifetime: v.GetDuration("db.max_lifetime"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	cfg.Filing = FilingConfig{
		DefaultAssessmentYear: v.GetString("filing.default_assessment_year"),
	}

	return cfg, nil
}
