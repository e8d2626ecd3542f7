package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env      string
	Port     string
	LogLevel string
}

type DBCfg struct{ DSN string }
type RedisCfg struct{ Addr string }

// APICfg describes how the admin UI reaches the workouts API.
type APICfg struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries uint64
}

type UICfg struct {
	Port          string
	SessionSecret string
	CacheTTL      time.Duration
}

type SecurityCfg struct {
	APIToken       string // bearer token guarding /api/v1; empty disables the check
	AllowedOrigins []string
}

type Cfg struct {
	App   AppCfg
	DB    DBCfg
	Redis RedisCfg
	API   APICfg
	UI    UICfg
	Sec   SecurityCfg
}

// Load reads .env (if present) into the process env and builds Cfg from it.
func Load() (Cfg, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Cfg{}, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("UI_PORT", "8080")
	v.SetDefault("UI_CACHE_TTL", "5m")
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("API_MAX_RETRIES", 3)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	cfg := Cfg{
		App: AppCfg{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB:    DBCfg{DSN: v.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: v.GetString("REDIS_ADDR")},
		API: APICfg{
			BaseURL:    strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			Token:      strings.TrimSpace(v.GetString("API_TOKEN")),
			Timeout:    v.GetDuration("API_TIMEOUT"),
			MaxRetries: v.GetUint64("API_MAX_RETRIES"),
		},
		UI: UICfg{
			Port:          v.GetString("UI_PORT"),
			SessionSecret: v.GetString("UI_SESSION_SECRET"),
			CacheTTL:      v.GetDuration("UI_CACHE_TTL"),
		},
		Sec: SecurityCfg{
			APIToken:       strings.TrimSpace(v.GetString("API_TOKEN")),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return cfg, nil
}

// RequireDB fails fast when the API server has nowhere to store workouts.
func (c Cfg) RequireDB() error {
	if c.DB.DSN == "" {
		return errors.New("DB_DSN is required")
	}
	return nil
}

// RequireSession fails fast when the admin UI cannot sign session cookies.
func (c Cfg) RequireSession() error {
	if len(c.UI.SessionSecret) < 32 {
		return errors.New("UI_SESSION_SECRET must be at least 32 bytes")
	}
	return nil
}

func (c Cfg) IsDev() bool { return c.App.Env == "dev" }

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
