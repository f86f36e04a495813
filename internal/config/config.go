package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig holds the secret used to verify athlete bearer tokens.
// Tokens are issued by the hosted identity backend, not by this service.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// SessionConfig tunes live workout sessions.
type SessionConfig struct {
	DefaultRest   time.Duration `mapstructure:"default_rest"`
	TickInterval  time.Duration `mapstructure:"tick_interval"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`    // 0 disables idle expiry
	MaxPerAthlete int           `mapstructure:"max_per_athlete"` // 0 means unlimited
}

// DefaultRestSeconds returns DefaultRest in whole seconds.
func (s SessionConfig) DefaultRestSeconds() int {
	return int(s.DefaultRest / time.Second)
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	File     string `mapstructure:"file"` // Empty means stdout only
	ToStdout bool   `mapstructure:"to_stdout"`
	JSON     bool   `mapstructure:"json"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, session.default_rest -> SESSION_DEFAULT_REST
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "liftlog")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("session.default_rest", "90s")
	v.SetDefault("session.tick_interval", "1s")
	v.SetDefault("session.idle_timeout", "2h")
	v.SetDefault("session.max_per_athlete", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.to_stdout", true)
	v.SetDefault("log.json", false)

	// A missing config file is fine; defaults and env vars still apply.
	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	// Duration strings ("90s", "2m") decode straight into time.Duration fields.
	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, config.validate()
}

func (c Config) validate() error {
	if c.Session.DefaultRest < time.Second {
		return errors.New("session.default_rest must be at least 1s")
	}
	if c.Session.TickInterval <= 0 {
		return errors.New("session.tick_interval must be positive")
	}
	if c.Session.IdleTimeout < 0 {
		return errors.New("session.idle_timeout must not be negative")
	}
	if c.Session.MaxPerAthlete < 0 {
		return errors.New("session.max_per_athlete must not be negative")
	}
	return nil
}
