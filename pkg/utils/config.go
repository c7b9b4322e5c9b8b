package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Notify   NotifyConfig
	AI       AIConfig
	MQ       MQConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string

	// empty allows any origin
	CORSOrigins []string
}

type StorageConfig struct {
	// Driver is one of memory, sqlite, postgres, redis or none.
	Driver     string
	Key        string
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	URL string
}

type NotifyConfig struct {
	// Driver is local or redis.
	Driver string
	Prefix string
}

type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type MQConfig struct {
	URL      string
	Exchange string
}

// LoadConfig reads path (an .env file, optional) and then the environment,
// which wins over the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "room-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("STORAGE_DRIVER", "memory")
	v.SetDefault("STORAGE_KEY", "fbsalas_bookings")
	v.SetDefault("SQLITE_PATH", "data/bookings.db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("NOTIFY_DRIVER", "local")
	v.SetDefault("NOTIFY_PREFIX", "room-booking")
	v.SetDefault("AI_BASE_URL", "https://generativelanguage.googleapis.com/")
	v.SetDefault("AI_MODEL", "gemini-2.0-flash")
	v.SetDefault("AI_TIMEOUT_SECONDS", 30)
	v.SetDefault("MQ_EXCHANGE", "room-booking")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Storage: StorageConfig{
			Driver:     v.GetString("STORAGE_DRIVER"),
			Key:        v.GetString("STORAGE_KEY"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Notify: NotifyConfig{
			Driver: v.GetString("NOTIFY_DRIVER"),
			Prefix: v.GetString("NOTIFY_PREFIX"),
		},
		AI: AIConfig{
			APIKey:  v.GetString("AI_API_KEY"),
			BaseURL: v.GetString("AI_BASE_URL"),
			Model:   v.GetString("AI_MODEL"),
			Timeout: time.Duration(v.GetInt("AI_TIMEOUT_SECONDS")) * time.Second,
		},
		MQ: MQConfig{
			URL:      v.GetString("MQ_URL"),
			Exchange: v.GetString("MQ_EXCHANGE"),
		},
	}

	return config, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
