package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the portfolio server.
type Config struct {
	DBPath        string
	ServerPort    int
	LogLevel      string
	Environment   string
	SentryDSN     string
	SecretKey     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	Site          Site
	ShutdownGrace time.Duration
}

// Site carries display metadata threaded into every rendered page.
type Site struct {
	Name        string
	Tagline     string
	GitHubURL   string
	LinkedInURL string
	Email       string
}

const (
	defaultDBPath        = "./data/portfolio.db"
	defaultServerPort    = 8080
	defaultLogLevel      = "info"
	defaultEnvironment   = "development"
	defaultSecretKey     = "dev-secret-key-change-in-production"
	defaultTokenTTL      = 60 * time.Minute
	defaultAdminUsername = "admin"
	defaultAdminPassword = "changeme123"
	defaultSiteName      = "Your Name"
	defaultSiteTagline   = "Software Developer & Lifelong Learner"
	defaultShutdownGrace = 10 * time.Second
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:        getEnv("DB_PATH", defaultDBPath),
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		Environment:   getEnv("ENV", defaultEnvironment),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		SecretKey:     getEnv("SECRET_KEY", defaultSecretKey),
		AdminUsername: getEnv("ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword: getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		Site: Site{
			Name:        getEnv("SITE_NAME", defaultSiteName),
			Tagline:     getEnv("SITE_TAGLINE", defaultSiteTagline),
			GitHubURL:   os.Getenv("GITHUB_URL"),
			LinkedInURL: os.Getenv("LINKEDIN_URL"),
			Email:       os.Getenv("EMAIL"),
		},
		TokenTTL:      defaultTokenTTL,
		ShutdownGrace: defaultShutdownGrace,
	}

	portValue := getEnv("SERVER_PORT", strconv.Itoa(defaultServerPort))
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid SERVER_PORT value: %s", portValue)
	}
	cfg.ServerPort = port

	if ttlValue := os.Getenv("TOKEN_TTL_MINUTES"); ttlValue != "" {
		minutes, err := strconv.Atoi(ttlValue)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid TOKEN_TTL_MINUTES value: %s", ttlValue)
		}
		if minutes <= 0 {
			return nil, eris.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", minutes)
		}
		cfg.TokenTTL = time.Duration(minutes) * time.Minute
	}

	return cfg, nil
}

// CookieSecure reports whether session cookies should carry the Secure flag.
// Development runs over plain HTTP, so the flag only applies in production.
func (c *Config) CookieSecure() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
