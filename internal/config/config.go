package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Config struct {
	// Database
	DBDriver   string // "sqlite" or "postgres"
	DBPath     string // sqlite file path
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Google OAuth
	GoogleClientID      string
	GoogleClientSecret  string
	GoogleSecretsFile   string
	GoogleTokenURL      string
	GoogleTokenInfoURL  string
	GoogleUserInfoURL   string
	GoogleRevokeURL     string
	GoogleClientTimeout time.Duration

	// Server
	Port          string
	CORSOrigins   string
	SessionExpiry time.Duration
	SessionCookie string
	LogRetention  int // days to keep system_logs rows
}

func Load() (*Config, error) {
	cfg := &Config{
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "restaurantmenu.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "restaurantmenu"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:  getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleSecretsFile:   getEnv("GOOGLE_CLIENT_SECRETS", ""),
		GoogleTokenURL:      getEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),
		GoogleTokenInfoURL:  getEnv("GOOGLE_TOKENINFO_URL", "https://www.googleapis.com/oauth2/v1/tokeninfo"),
		GoogleUserInfoURL:   getEnv("GOOGLE_USERINFO_URL", "https://www.googleapis.com/oauth2/v1/userinfo"),
		GoogleRevokeURL:     getEnv("GOOGLE_REVOKE_URL", "https://accounts.google.com/o/oauth2/revoke"),
		GoogleClientTimeout: parseDuration(getEnv("GOOGLE_CLIENT_TIMEOUT", "10s")),

		Port:          getEnv("PORT", "5000"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "24h")),
		SessionCookie: getEnv("SESSION_COOKIE", "session_id"),
		LogRetention:  30,
	}

	// A client_secrets.json downloaded from the Google console takes
	// precedence over the individual env vars.
	if cfg.GoogleSecretsFile != "" {
		if err := cfg.loadClientSecrets(cfg.GoogleSecretsFile); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// clientSecrets mirrors the "web" section of the credentials file the
// Google console exports.
type clientSecrets struct {
	Web struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		TokenURI     string `json:"token_uri"`
	} `json:"web"`
}

func (c *Config) loadClientSecrets(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read client secrets file: %w", err)
	}

	var secrets clientSecrets
	if err := json.Unmarshal(raw, &secrets); err != nil {
		return fmt.Errorf("failed to parse client secrets file: %w", err)
	}
	if secrets.Web.ClientID == "" {
		return fmt.Errorf("client secrets file %s has no web.client_id", path)
	}

	c.GoogleClientID = secrets.Web.ClientID
	c.GoogleClientSecret = secrets.Web.ClientSecret
	if secrets.Web.TokenURI != "" {
		c.GoogleTokenURL = secrets.Web.TokenURI
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
