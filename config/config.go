package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Keys double as environment variable names once upper-cased.
const (
	KeyPort              = "port"
	KeyDBPath            = "db_path"
	KeyLogLevel          = "log_level"
	KeyLogFormat         = "log_format"
	KeyCORSOrigins       = "cors_origins"
	KeySeedOnStart       = "seed_on_start"
	KeyStaticDir         = "static_dir"
	KeyPriceFeedTimeout  = "price_feed_timeout"
	KeyPriceFeedMaxBytes = "price_feed_max_bytes"
)

type AppConfig struct {
	Port              string
	DBPath            string
	LogLevel          string
	LogFormat         string
	CORSOrigins       []string
	SeedOnStart       bool
	StaticDir         string
	PriceFeedTimeout  time.Duration
	PriceFeedMaxBytes int64
}

// New returns a viper instance with defaults, reading envFile (".env" when
// empty) into the process environment first. A missing env file is not an
// error; variables already set in the environment win over the file.
func New(envFile string) (*viper.Viper, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyDBPath, "agrimitra.db")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "plain")
	v.SetDefault(KeyCORSOrigins, "*")
	v.SetDefault(KeySeedOnStart, true)
	v.SetDefault(KeyStaticDir, "frontend")
	v.SetDefault(KeyPriceFeedTimeout, 20*time.Second)
	v.SetDefault(KeyPriceFeedMaxBytes, 1_500_000)
	v.AutomaticEnv()
	return v, nil
}

// ReadFile merges a yaml/toml/json config file over the defaults. Environment
// variables still take precedence.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load resolves and validates the application config.
func Load(v *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		Port:              strings.TrimSpace(v.GetString(KeyPort)),
		DBPath:            strings.TrimSpace(v.GetString(KeyDBPath)),
		LogLevel:          strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFormat:         strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		CORSOrigins:       splitList(v.GetString(KeyCORSOrigins)),
		SeedOnStart:       v.GetBool(KeySeedOnStart),
		StaticDir:         strings.TrimSpace(v.GetString(KeyStaticDir)),
		PriceFeedTimeout:  v.GetDuration(KeyPriceFeedTimeout),
		PriceFeedMaxBytes: v.GetInt64(KeyPriceFeedMaxBytes),
	}
	switch {
	case cfg.Port == "":
		return cfg, errors.New("PORT is empty")
	case cfg.DBPath == "":
		return cfg, errors.New("DB_PATH is empty")
	case cfg.LogFormat != "plain" && cfg.LogFormat != "json":
		return cfg, fmt.Errorf("LOG_FORMAT must be plain or json, got %q", cfg.LogFormat)
	case cfg.PriceFeedTimeout <= 0:
		return cfg, fmt.Errorf("PRICE_FEED_TIMEOUT must be positive")
	case cfg.PriceFeedMaxBytes <= 0:
		return cfg, fmt.Errorf("PRICE_FEED_MAX_BYTES must be positive")
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Addr is the listen address for Port.
func (c AppConfig) Addr() string { return ":" + c.Port }
