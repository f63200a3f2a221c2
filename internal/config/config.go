package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"` // gin mode: debug, release, test
	AppTitle        string        `yaml:"app_title"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds one DSN per credential scope. Each role connects with its own grants.
type DatabaseConfig struct {
	RootURL         string        `yaml:"root_url"`
	AdminURL        string        `yaml:"admin_url"`
	ManagerURL      string        `yaml:"manager_url"`
	SupervisorURL   string        `yaml:"supervisor_url"`
	Echo            bool          `yaml:"echo"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	PasswordHasher string        `yaml:"password_hasher"`
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

// RateLimitConfig throttles login attempts per client IP
type RateLimitConfig struct {
	LoginRate  float64 `yaml:"login_rate"` // tokens per second
	LoginBurst int     `yaml:"login_burst"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			Mode:            "debug",
			AppTitle:        "SW Management API",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
		},
		Auth: AuthConfig{
			TokenTTL:       time.Hour,
			PasswordHasher: HasherSHA256,
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
			AllowCredentials: true,
		},
		RateLimit: RateLimitConfig{
			LoginRate:  1,
			LoginBurst: 5,
		},
	}
}

// Load builds the configuration from defaults, configs/.env, the optional CONFIG_FILE yaml,
// and finally the process environment, each layer overriding the previous one.
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load("configs/.env")

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.Mode = getEnv("GIN_MODE", cfg.Server.Mode)
	cfg.Server.AppTitle = getEnv("APP_TITLE", cfg.Server.AppTitle)
	cfg.Server.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Database.RootURL = getEnv("SQL_ROOT_URL", cfg.Database.RootURL)
	cfg.Database.AdminURL = getEnv("SQL_ADMIN_URL", cfg.Database.AdminURL)
	cfg.Database.ManagerURL = getEnv("SQL_MANAGER_URL", cfg.Database.ManagerURL)
	cfg.Database.SupervisorURL = getEnv("SQL_SUPERVISOR_URL", cfg.Database.SupervisorURL)
	cfg.Database.Echo = getEnvBool("DB_ECHO", cfg.Database.Echo)
	cfg.Database.AutoMigrate = getEnvBool("DB_AUTO_MIGRATE", cfg.Database.AutoMigrate)
	cfg.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetime = getEnvDuration("DB_CONN_MAX_LIFETIME", cfg.Database.ConnMaxLifetime)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTL = getEnvDuration("JWT_TTL", cfg.Auth.TokenTTL)
	cfg.Auth.PasswordHasher = strings.ToLower(getEnv("PASSWORD_HASHER", cfg.Auth.PasswordHasher))

	cfg.CORS.AllowedOrigins = getEnvList("ALLOWED_ORIGINS", cfg.CORS.AllowedOrigins)
	cfg.CORS.AllowedMethods = getEnvList("ALLOWED_METHODS", cfg.CORS.AllowedMethods)
	cfg.CORS.AllowedHeaders = getEnvList("ALLOWED_HEADERS", cfg.CORS.AllowedHeaders)
	cfg.CORS.AllowCredentials = getEnvBool("ALLOWED_CREDENTIALS", cfg.CORS.AllowCredentials)

	cfg.RateLimit.LoginRate = getEnvFloat("LOGIN_RATE_LIMIT", cfg.RateLimit.LoginRate)
	cfg.RateLimit.LoginBurst = getEnvInt("LOGIN_RATE_BURST", cfg.RateLimit.LoginBurst)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if c.Database.RootURL == "" {
		return errors.New("SQL_ROOT_URL is required")
	}
	if c.Database.AdminURL == "" && c.Database.ManagerURL == "" && c.Database.SupervisorURL == "" {
		return errors.New("at least one role database URL is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("token TTL must be positive")
	}
	if c.Auth.JWTSecret == "" && c.Server.Mode == "release" {
		return errors.New("JWT_SECRET is required in release mode")
	}
	switch c.Auth.PasswordHasher {
	case HasherSHA256, HasherBcrypt:
	default:
		return fmt.Errorf("unknown password hasher %q", c.Auth.PasswordHasher)
	}
	if c.RateLimit.LoginRate <= 0 || c.RateLimit.LoginBurst <= 0 {
		return errors.New("login rate limit and burst must be positive")
	}
	return nil
}

// Secret returns the signing key, falling back to a development key outside release mode
func (c AuthConfig) Secret() []byte {
	if c.JWTSecret == "" {
		return []byte("default_super_secret_key")
	}
	return []byte(c.JWTSecret)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, e.g. ALLOWED_ORIGINS=http://a,http://b
func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
