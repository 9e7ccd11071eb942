package common

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

type ServerConfig struct {
	Port           string
	AllowOrigins   string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	User            string
	Password        string
	Name            string
	Port            string
	SSLMode         string
	TimeZone        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Enabled bool
	URL     string
}

type NotificationConfig struct {
	DispatchTimeout time.Duration
	PresenceTTL     time.Duration
	ChannelPrefix   string
}

// NewViper reads .env when present; the environment always wins.
func NewViper() *Config {
	config := New()
	config.SetConfigFile(".env")
	config.AddConfigPath("../")

	log.Trace("Checking file .env ....")
	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			panic("failed read config: " + err.Error())
		}
		log.Info("No .env file found, using environment only")
	}
	return &Config{Viper: config}
}

// New returns a viper instance with defaults and environment binding but
// no config file.
func New() *viper.Viper {
	config := viper.New()
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	setDefaults(config)
	return config
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("APP_NAME", "stoory-messaging")
	config.SetDefault("APP_PORT", "7720")
	config.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:8080")
	config.SetDefault("REQUEST_TIMEOUT", "10s")

	config.SetDefault("LOG_LEVEL", "info")
	config.SetDefault("LOG_FORMAT", "text")

	config.SetDefault("DB_HOSTNAME", "localhost")
	config.SetDefault("DB_PORT", "5432")
	config.SetDefault("DB_SSLMODE", "disable")
	config.SetDefault("DB_TIMEZONE", "UTC")
	config.SetDefault("DB_MAX_IDLE_CONNS", 10)
	config.SetDefault("DB_MAX_OPEN_CONNS", 100)
	config.SetDefault("DB_CONN_MAX_LIFETIME", "300s")
	config.SetDefault("DB_AUTO_MIGRATE_REFERENCE", false)

	config.SetDefault("REDIS_ENABLED", false)
	config.SetDefault("REDIS_URL", "redis://localhost:6379/0")

	config.SetDefault("NOTIFY_TIMEOUT", "5s")
	config.SetDefault("PRESENCE_TTL", "45s")
	config.SetDefault("NOTIFY_CHANNEL_PREFIX", "notifications")
}

func (c *Config) GetAppConfig() (appName string) {
	return c.Viper.GetString("APP_NAME")
}

func (c *Config) GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:           c.Viper.GetString("APP_PORT"),
		AllowOrigins:   c.Viper.GetString("CORS_ALLOW_ORIGINS"),
		RequestTimeout: c.Viper.GetDuration("REQUEST_TIMEOUT"),
	}
}

func (c *Config) GetLogConfig() (level, format string) {
	return c.Viper.GetString("LOG_LEVEL"), c.Viper.GetString("LOG_FORMAT")
}

func (c *Config) GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            c.Viper.GetString("DB_HOSTNAME"),
		User:            c.Viper.GetString("DB_USER"),
		Password:        c.Viper.GetString("DB_PASSWORD"),
		Name:            c.Viper.GetString("DB_NAME"),
		Port:            c.Viper.GetString("DB_PORT"),
		SSLMode:         c.Viper.GetString("DB_SSLMODE"),
		TimeZone:        c.Viper.GetString("DB_TIMEZONE"),
		MaxIdleConns:    c.Viper.GetInt("DB_MAX_IDLE_CONNS"),
		MaxOpenConns:    c.Viper.GetInt("DB_MAX_OPEN_CONNS"),
		ConnMaxLifetime: c.Viper.GetDuration("DB_CONN_MAX_LIFETIME"),
		AutoMigrate:     c.Viper.GetBool("DB_AUTO_MIGRATE_REFERENCE"),
	}
}

func (c *Config) GetRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled: c.Viper.GetBool("REDIS_ENABLED"),
		URL:     c.Viper.GetString("REDIS_URL"),
	}
}

func (c *Config) GetJwtConfig() []byte {
	jwtSecret := c.Viper.GetString("JWT_SECRET")
	return []byte(jwtSecret)
}

func (c *Config) GetNotificationConfig() NotificationConfig {
	return NotificationConfig{
		DispatchTimeout: c.Viper.GetDuration("NOTIFY_TIMEOUT"),
		PresenceTTL:     c.Viper.GetDuration("PRESENCE_TTL"),
		ChannelPrefix:   c.Viper.GetString("NOTIFY_CHANNEL_PREFIX"),
	}
}

// GetInternalToken is the shared secret the payment service presents when
// it asks for a room.
func (c *Config) GetInternalToken() string {
	return c.Viper.GetString("INTERNAL_API_TOKEN")
}
