package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Env       string `mapstructure:"ENV"`
	Port      string `mapstructure:"PORT"`
	BaseURL   string `mapstructure:"BASE_URL"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE"`

	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
	AdminEmail    string        `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string        `mapstructure:"ADMIN_PASSWORD"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	NATSURL string `mapstructure:"NATS_URL"`

	ImageStore       string `mapstructure:"IMAGE_STORE"`
	ImageDir         string `mapstructure:"IMAGE_DIR"`
	DriveFolderID    string `mapstructure:"DRIVE_FOLDER_ID"`
	DriveCredentials string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	MinioEndpoint    string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey   string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey   string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket      string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL      bool   `mapstructure:"MINIO_USE_SSL"`
	MinioPublicURL   string `mapstructure:"MINIO_PUBLIC_URL"`

	ChromePath string `mapstructure:"CHROME_PATH"`
}

var keys = []string{
	"ENV", "PORT", "BASE_URL", "LOG_LEVEL", "LOG_FORMAT",
	"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"JWT_SECRET", "TOKEN_TTL", "ADMIN_EMAIL", "ADMIN_PASSWORD",
	"REDIS_ADDR", "REDIS_PASSWORD", "CACHE_TTL",
	"NATS_URL",
	"IMAGE_STORE", "IMAGE_DIR", "DRIVE_FOLDER_ID", "GOOGLE_APPLICATION_CREDENTIALS",
	"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL", "MINIO_PUBLIC_URL",
	"CHROME_PATH",
}

// Load reads the configuration from the process environment.
// Values loaded from .env by godotenv are already part of the environment at this point.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("CACHE_TTL", 10*time.Second)
	v.SetDefault("IMAGE_STORE", "local")
	v.SetDefault("IMAGE_DIR", "uploads/images")
	v.SetDefault("MINIO_BUCKET", "fnp-images")

	// AutomaticEnv only answers Get calls; Unmarshal needs every key bound explicitly.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Port = strings.TrimPrefix(cfg.Port, ":")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	switch c.ImageStore {
	case "local":
	case "drive":
		if c.DriveCredentials == "" {
			return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is required when IMAGE_STORE=drive")
		}
		if c.DriveFolderID == "" {
			return fmt.Errorf("DRIVE_FOLDER_ID is required when IMAGE_STORE=drive")
		}
	case "minio":
		if c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when IMAGE_STORE=minio")
		}
	default:
		return fmt.Errorf("unknown IMAGE_STORE %q: use local, drive or minio", c.ImageStore)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
// DATABASE_URL wins; otherwise it is built from the DB_* variables.
func (c *Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode), nil
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
