package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string `mapstructure:"APP_PORT"`

	// --- Postgres ---
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBScheme   string `mapstructure:"DB_SCHEME"`

	// --- Redis ---
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RedisDB            int           `mapstructure:"REDIS_DB"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDialTimeout   time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
	RedisOpTimeout     time.Duration `mapstructure:"REDIS_OP_TIMEOUT"`
	RedisMaxReconnects int           `mapstructure:"REDIS_MAX_RECONNECTS"`

	// --- Auth ---
	AuthJWTSecret string        `mapstructure:"AUTH_JWT_SECRET"`
	AuthIssuer    string        `mapstructure:"AUTH_ISSUER"`
	AuthTokenTTL  time.Duration `mapstructure:"AUTH_TOKEN_TTL"`

	// --- Rate limit ---
	RateLimitMax    int64         `mapstructure:"RATE_LIMIT_MAX"`
	RateLimitWindow time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`

	// --- Распознавание растений (внешний API) ---
	PlantAPIURL string `mapstructure:"PLANT_API_URL"`
	PlantAPIKey string `mapstructure:"PLANT_API_KEY"`

	// --- S3 ---
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`
	S3PathStyle bool   `mapstructure:"S3_PATH_STYLE"`
}

// String реализует интерфейс Stringer
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  DBHost: %s\n", c.DBHost))
	sb.WriteString(fmt.Sprintf("  DBPort: %d\n", c.DBPort))
	sb.WriteString(fmt.Sprintf("  DBUser: %s\n", c.DBUser))
	sb.WriteString(fmt.Sprintf("  DBName: %s\n", c.DBName))
	sb.WriteString(fmt.Sprintf("  DBScheme: %s\n", c.DBScheme))

	// пароли и секреты маскируем
	if c.DBPassword != "" {
		sb.WriteString("  DBPassword: ********\n")
	} else {
		sb.WriteString("  DBPassword: (empty)\n")
	}

	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  RedisDB: %d\n", c.RedisDB))
	if c.RedisPassword != "" {
		sb.WriteString("  RedisPassword: ********\n")
	} else {
		sb.WriteString("  RedisPassword: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  RedisDialTimeout: %s\n", c.RedisDialTimeout))
	sb.WriteString(fmt.Sprintf("  RedisOpTimeout: %s\n", c.RedisOpTimeout))
	sb.WriteString(fmt.Sprintf("  RedisMaxReconnects: %d\n", c.RedisMaxReconnects))

	if c.AuthJWTSecret != "" {
		sb.WriteString("  AuthJWTSecret: ********\n")
	} else {
		sb.WriteString("  AuthJWTSecret: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  AuthIssuer: %s\n", c.AuthIssuer))
	sb.WriteString(fmt.Sprintf("  AuthTokenTTL: %s\n", c.AuthTokenTTL))

	sb.WriteString(fmt.Sprintf("  RateLimitMax: %d\n", c.RateLimitMax))
	sb.WriteString(fmt.Sprintf("  RateLimitWindow: %s\n", c.RateLimitWindow))

	sb.WriteString(fmt.Sprintf("  PlantAPIURL: %s\n", c.PlantAPIURL))
	if c.PlantAPIKey != "" {
		sb.WriteString("  PlantAPIKey: ********\n")
	} else {
		sb.WriteString("  PlantAPIKey: (empty)\n")
	}

	// S3
	sb.WriteString(fmt.Sprintf("  S3Endpoint: %s\n", c.S3Endpoint))
	sb.WriteString(fmt.Sprintf("  S3Region: %s\n", c.S3Region))
	sb.WriteString(fmt.Sprintf("  S3Bucket: %s\n", c.S3Bucket))
	if c.S3AccessKey != "" {
		sb.WriteString("  S3AccessKey: ********\n")
	} else {
		sb.WriteString("  S3AccessKey: (empty)\n")
	}
	if c.S3SecretKey != "" {
		sb.WriteString("  S3SecretKey: ********\n")
	} else {
		sb.WriteString("  S3SecretKey: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  S3UseSSL: %v\n", c.S3UseSSL))
	sb.WriteString(fmt.Sprintf("  S3PathStyle: %v\n", c.S3PathStyle))

	return sb.String()
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// Загружаем .env только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Регистрируем интересующие ключи окружения
	keys := []string{
		"APP_ENV", "APP_PORT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SCHEME",
		"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD",
		"REDIS_DIAL_TIMEOUT", "REDIS_OP_TIMEOUT", "REDIS_MAX_RECONNECTS",
		"AUTH_JWT_SECRET", "AUTH_ISSUER", "AUTH_TOKEN_TTL",
		"RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW",
		"PLANT_API_URL", "PLANT_API_KEY",
		"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"S3_USE_SSL", "S3_PATH_STYLE",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.applyDefaults()

	if cfg.AuthJWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AppPort == "" {
		c.AppPort = ":8080"
	}
	if c.DBScheme == "" {
		c.DBScheme = "farmmall"
	}
	if c.AuthIssuer == "" {
		c.AuthIssuer = "farm-mall"
	}
	if c.AuthTokenTTL <= 0 {
		c.AuthTokenTTL = 24 * time.Hour
	}
	if c.RateLimitMax <= 0 {
		c.RateLimitMax = 60
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = time.Minute
	}
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
