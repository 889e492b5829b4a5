package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrSecretKeyMissing     = errors.New("auth.secret_key is required")
	ErrSecretKeyPlaceholder = errors.New("auth.secret_key uses an example placeholder")
	ErrSecretKeyTooShort    = errors.New("auth.secret_key must be at least 32 characters")
)

const MinSecretKeyLength = 32

var secretKeyPlaceholders = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type ServerConfig struct {
	Port     string
	Timezone string
}

type AuthConfig struct {
	SecretKey string
	TokenTTL  time.Duration
}

type DatabaseConfig struct {
	Path string
}

type LogstashConfig struct {
	Enable bool
	URL    string
}

type ElkConfig struct {
	Enable bool
	URL    string
	Index  string
}

type LogConfig struct {
	Level    string
	Logstash LogstashConfig
	Elk      ElkConfig
}

type RabbitMQConfig struct {
	URL   string
	Queue string
}

type I18nConfig struct {
	DefaultLanguage string
}

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Log      LogConfig
	RabbitMQ RabbitMQConfig
	I18n     I18nConfig
}

// Load reads config.yml from the given directories (the working directory
// when none are given). Environment variables override file values using
// upper-case keys with dots replaced by underscores, e.g. SERVER_PORT. A .env
// file in the working directory is loaded first when present.
func Load(configDirs ...string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	bindLegacyEnv(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(configDirs) == 0 {
		configDirs = []string{"."}
	}
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return Config{
		Server: ServerConfig{
			Port:     strings.TrimSpace(v.GetString("server.port")),
			Timezone: strings.TrimSpace(v.GetString("server.timezone")),
		},
		Auth: AuthConfig{
			SecretKey: strings.TrimSpace(v.GetString("auth.secret_key")),
			TokenTTL:  v.GetDuration("auth.token_ttl"),
		},
		Database: DatabaseConfig{
			Path: strings.TrimSpace(v.GetString("database.path")),
		},
		Log: LogConfig{
			Level: strings.TrimSpace(v.GetString("log.level")),
			Logstash: LogstashConfig{
				Enable: v.GetBool("log.logstash.enable"),
				URL:    strings.TrimSpace(v.GetString("log.logstash.url")),
			},
			Elk: ElkConfig{
				Enable: v.GetBool("log.elk.enable"),
				URL:    strings.TrimSpace(v.GetString("log.elk.url")),
				Index:  strings.TrimSpace(v.GetString("log.elk.index")),
			},
		},
		RabbitMQ: RabbitMQConfig{
			URL:   strings.TrimSpace(v.GetString("rabbitmq.url")),
			Queue: strings.TrimSpace(v.GetString("rabbitmq.queue")),
		},
		I18n: I18nConfig{
			DefaultLanguage: strings.TrimSpace(v.GetString("i18n.default_language")),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("auth.token_ttl", "720h")
	v.SetDefault("database.path", filepath.Join("data", "nutrilog.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.logstash.enable", false)
	v.SetDefault("log.elk.enable", false)
	v.SetDefault("log.elk.index", "nutrilog")
	v.SetDefault("rabbitmq.queue", "nutrilog.events")
	v.SetDefault("i18n.default_language", "en")
}

// bindLegacyEnv keeps the short variable names used by container setups.
func bindLegacyEnv(v *viper.Viper) {
	legacy := map[string]string{
		"server.port":           "PORT",
		"server.timezone":       "TZ",
		"auth.secret_key":       "SECRET_KEY",
		"database.path":         "DB_PATH",
		"i18n.default_language": "DEFAULT_LANGUAGE",
	}
	for key, env := range legacy {
		if _, ok := os.LookupEnv(env); ok {
			_ = v.BindEnv(key, env)
		}
	}
}

func ValidateSecretKey(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ErrSecretKeyMissing
	}
	if _, ok := secretKeyPlaceholders[strings.ToLower(secret)]; ok {
		return ErrSecretKeyPlaceholder
	}
	if len(secret) < MinSecretKeyLength {
		return ErrSecretKeyTooShort
	}
	return nil
}

// Location resolves server.timezone, falling back to UTC.
func (cfg Config) Location() (*time.Location, error) {
	if cfg.Server.Timezone == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid server.timezone %q: %w", cfg.Server.Timezone, err)
	}
	return location, nil
}
