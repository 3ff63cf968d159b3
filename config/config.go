package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultBackendURL = "http://localhost:8000/api/v1"

type Config struct {
	Port           string
	BackendURL     string // empty means demo mode
	BackendTimeout time.Duration
	DBPath         string
	ExportsDir     string
	SessionTTL     time.Duration
	MaxUploadSize  int64
	DemoDelay      time.Duration
	HistoryLimit   int
	LogLevel       string
	LogFormat      string
	GinMode        string
}

// DemoMode reports whether queries are answered from static data instead of a backend.
func (c Config) DemoMode() bool {
	return strings.TrimSpace(c.BackendURL) == ""
}

func GetConfig() (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", "9090")
	v.SetDefault("backend_url", DefaultBackendURL)
	v.SetDefault("backend_timeout", "0s")
	v.SetDefault("db_path", "./data/badger")
	v.SetDefault("exports_dir", "./exports")
	v.SetDefault("session_ttl", "30m")
	v.SetDefault("max_upload_size", 50*1024*1024)
	v.SetDefault("demo_mode", false)
	v.SetDefault("demo_delay", "1500ms")
	v.SetDefault("history_limit", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("gin_mode", "release")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:           v.GetString("port"),
		BackendURL:     strings.TrimSuffix(v.GetString("backend_url"), "/"),
		BackendTimeout: v.GetDuration("backend_timeout"),
		DBPath:         v.GetString("db_path"),
		ExportsDir:     v.GetString("exports_dir"),
		SessionTTL:     v.GetDuration("session_ttl"),
		MaxUploadSize:  v.GetInt64("max_upload_size"),
		DemoDelay:      v.GetDuration("demo_delay"),
		HistoryLimit:   v.GetInt("history_limit"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		GinMode:        v.GetString("gin_mode"),
	}
	if v.GetBool("demo_mode") {
		cfg.BackendURL = ""
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if c.MaxUploadSize <= 0 {
		return errors.New("max_upload_size must be positive")
	}
	if c.HistoryLimit <= 0 {
		return errors.New("history_limit must be positive")
	}
	if c.BackendTimeout < 0 || c.DemoDelay < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}
