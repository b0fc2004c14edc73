package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host           string   `yaml:"host"`
		Port           int      `yaml:"port"`
		Env            string   `yaml:"env"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql, sqlite
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		URL string `yaml:"url"` // пусто - отозванные токены хранятся в памяти
	} `yaml:"redis"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTL        int    `yaml:"ttl"` // в часах
		CookieName string `yaml:"cookie_name"`
	} `yaml:"jwt"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // For local storage
		BaseURL    string `yaml:"base_url"`    // Public URL base
		Bucket     string `yaml:"bucket"`      // For S3/R2
		Region     string `yaml:"region"`      // For S3
		AccessKey  string `yaml:"access_key"`  // For S3/R2
		SecretKey  string `yaml:"secret_key"`  // For S3/R2
		Endpoint   string `yaml:"endpoint"`    // For R2 or custom S3
		UseSSL     bool   `yaml:"use_ssl"`     // For S3/R2
		PublicRead bool   `yaml:"public_read"` // Make files public
	} `yaml:"storage"`

	Upload struct {
		AvatarMaxSize    int64    `yaml:"avatar_max_size"`
		ThumbnailMaxSize int64    `yaml:"thumbnail_max_size"`
		PhotoMaxSize     int64    `yaml:"photo_max_size"`
		AllowedTypes     []string `yaml:"allowed_types"`
	} `yaml:"upload"`

	Blob struct {
		RetryAttempts       int `yaml:"retry_attempts"`
		AvatarRetryAttempts int `yaml:"avatar_retry_attempts"`
		RetryUnitMs         int `yaml:"retry_unit_ms"`
		// 0 - фоновая очистка выключена, остается POST /admin/cleanup-blobs
		SweepIntervalMinutes int `yaml:"sweep_interval_minutes"`
	} `yaml:"blob"`

	Features struct {
		PremiumModal bool   `yaml:"premium_modal"`
		Plan         string `yaml:"plan"`
	} `yaml:"features"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

// RetryUnit возвращает базовую задержку между попытками удаления blob.
func (c *Config) RetryUnit() time.Duration {
	return time.Duration(c.Blob.RetryUnitMs) * time.Millisecond
}

// SweepInterval возвращает период фоновой очистки хранилища.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Blob.SweepIntervalMinutes) * time.Minute
}

// TokenTTL возвращает время жизни сессии.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Hour
}

// IsProduction сообщает, скрывать ли детали внутренних ошибок.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

var AppConfig *Config

// Default возвращает полную конфигурацию со значениями по умолчанию.
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}

	cfg.Database.Driver = "postgres"

	cfg.JWT.Secret = "change-me"
	cfg.JWT.TTL = 24
	cfg.JWT.CookieName = "auth_token"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/files"

	cfg.Upload.AvatarMaxSize = 2 * 1024 * 1024    // 2MB
	cfg.Upload.ThumbnailMaxSize = 5 * 1024 * 1024 // 5MB
	cfg.Upload.PhotoMaxSize = 4 * 1024 * 1024     // 4MB
	cfg.Upload.AllowedTypes = []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
	}

	cfg.Blob.RetryAttempts = 3
	cfg.Blob.AvatarRetryAttempts = 5
	cfg.Blob.RetryUnitMs = 1000

	cfg.Features.Plan = "free"

	return &cfg
}

// Load читает YAML-файл поверх значений по умолчанию и применяет
// переменные окружения. Отсутствующий файл не является ошибкой.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("config file %s not found, using defaults and environment", path)
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("DATABASE_URL", &cfg.Database.DSN)
	setString("DATABASE_DRIVER", &cfg.Database.Driver)
	setString("SERVER_ENV", &cfg.Server.Env)
	setInt("SERVER_PORT", &cfg.Server.Port)
	setInt("BLOB_SWEEP_INTERVAL_MINUTES", &cfg.Blob.SweepIntervalMinutes)
	setString("JWT_SECRET", &cfg.JWT.Secret)
	setString("REDIS_URL", &cfg.Redis.URL)

	setString("STORAGE_TYPE", &cfg.Storage.Type)
	setString("STORAGE_BASE_PATH", &cfg.Storage.BasePath)
	setString("STORAGE_BASE_URL", &cfg.Storage.BaseURL)
	setString("STORAGE_BUCKET", &cfg.Storage.Bucket)
	setString("STORAGE_REGION", &cfg.Storage.Region)
	setString("STORAGE_ACCESS_KEY", &cfg.Storage.AccessKey)
	setString("STORAGE_SECRET_KEY", &cfg.Storage.SecretKey)
	setString("STORAGE_ENDPOINT", &cfg.Storage.Endpoint)

	setString("FIRST_ADMIN_EMAIL", &cfg.FirstAdminEmail)
	setString("FIRST_ADMIN_PASSWORD", &cfg.FirstAdminPassword)
}

// LoadConfig загружает .env, затем config.yaml (CONFIG_PATH) и окружение.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, relying on process environment")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
