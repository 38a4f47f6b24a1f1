package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting. Signing secrets and provider
// credentials are required and have no defaults.
type Config struct {
	Env string `env:"ENV" envDefault:"development"`

	MongoURI     string `env:"MONGODB_URI,required"`
	DatabaseName string `env:"DATABASE_NAME,required"`

	AccessSecretKey  string `env:"ACCESS_SECRET_KEY,required"`
	AccessAlgorithm  string `env:"ACCESS_ALGORITHM" envDefault:"HS256"`
	RefreshSecretKey string `env:"REFRESH_SECRET_KEY,required"`
	RefreshAlgorithm string `env:"REFRESH_ALGORITHM" envDefault:"HS256"`

	AccessTokenTTLMinutes int `env:"ACCESS_TOKEN_TTL_MINUTES" envDefault:"15"`
	RefreshTokenTTLDays   int `env:"REFRESH_TOKEN_TTL_DAYS" envDefault:"7"`

	GoogleClientID            string `env:"GOOGLE_CLIENT_ID,required"`
	GoogleClientSecret        string `env:"GOOGLE_CLIENT_SECRET,required"`
	GoogleRedirectURI         string `env:"GOOGLE_REDIRECT_URI,required"`
	GoogleRedirectURIMobile   string `env:"GOOGLE_REDIRECT_URI_MOBILE"`
	FacebookClientID          string `env:"FACEBOOK_CLIENT_ID,required"`
	FacebookClientSecret      string `env:"FACEBOOK_CLIENT_SECRET,required"`
	FacebookRedirectURI       string `env:"FACEBOOK_REDIRECT_URI,required"`
	FacebookRedirectURIMobile string `env:"FACEBOOK_REDIRECT_URI_MOBILE"`

	FrontendCallbackURI string `env:"FRONTEND_CALLBACK_URI,required"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	CookieDomain   string   `env:"COOKIE_DOMAIN"`

	AdminEmails   []string `env:"ADMIN_EMAILS" envSeparator:","`
	CreatorEmails []string `env:"CREATOR_EMAILS" envSeparator:","`

	GCSBucket               string `env:"GCS_BUCKET"`
	CredentialsFileLocation string `env:"CREDENTIALS_FILE_LOCATION"`

	MaxUploadSizeMB      int      `env:"MAX_UPLOAD_SIZE_MB" envDefault:"5"`
	AllowedFileExts      []string `env:"ALLOWED_FILE_EXTENSIONS" envSeparator:"," envDefault:".jpg,.jpeg,.png,.webp"`
	AllowedFileMimeTypes []string `env:"ALLOWED_FILE_MIME_TYPES" envSeparator:"," envDefault:"image/jpeg,image/png,image/webp"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.AccessAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("unsupported ACCESS_ALGORITHM %q", cfg.AccessAlgorithm)
	}
	switch cfg.RefreshAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("unsupported REFRESH_ALGORITHM %q", cfg.RefreshAlgorithm)
	}

	return cfg, nil
}

func (c *Config) AccessTTL() time.Duration {
	min := c.AccessTokenTTLMinutes
	if min <= 0 {
		min = 15
	}
	return time.Duration(min) * time.Minute
}

func (c *Config) RefreshTTL() time.Duration {
	days := c.RefreshTokenTTLDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
