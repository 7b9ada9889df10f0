package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store driver names
const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

// Mail provider names. Gmail resolves to a fixed SMTP endpoint; generic
// takes host/port/SSL from the environment.
const (
	MailProviderGmail   = "gmail"
	MailProviderGeneric = "generic"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Mail          MailConfig
	RateLimit     RateLimitConfig
	Archive       ArchiveConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
	PublicDir      string
}

type StoreConfig struct {
	Driver      string
	FilePath    string
	DatabaseURL string
	MaxConns    int32
	MinConns    int32
}

type MailConfig struct {
	Provider string
	Host     string
	Port     int
	SSL      bool
	Username string
	Password string
	From     string
	AdminTo  string
}

type RateLimitConfig struct {
	SubmissionMax           int
	SubmissionWindowMinutes int
}

type ArchiveConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	ObjectKey       string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint string
	ServiceName      string
	ServiceVersion   string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "3000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:3000")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("PUBLIC_DIR", "./public")
	v.SetDefault("STORE_DRIVER", StoreDriverFile)
	v.SetDefault("STORE_FILE_PATH", "data/submissions.json")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_SECURE", false)
	v.SetDefault("EMAIL_SERVICE", MailProviderGeneric)
	v.SetDefault("SUBMISSION_RATE_MAX", 5)
	v.SetDefault("SUBMISSION_RATE_WINDOW_MINUTES", 15)
	v.SetDefault("ARCHIVE_OBJECT_KEY", "backups/submissions.json")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "quote-api")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "quote-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
			PublicDir:      v.GetString("PUBLIC_DIR"),
		},
		Store: StoreConfig{
			Driver:      v.GetString("STORE_DRIVER"),
			FilePath:    v.GetString("STORE_FILE_PATH"),
			DatabaseURL: v.GetString("DATABASE_URL"),
			MaxConns:    20,
			MinConns:    2,
		},
		Mail: MailConfig{
			Provider: v.GetString("EMAIL_SERVICE"),
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			SSL:      v.GetBool("SMTP_SECURE"),
			Username: v.GetString("EMAIL_USER"),
			Password: v.GetString("EMAIL_PASS"),
			From:     v.GetString("EMAIL_FROM"),
			AdminTo:  v.GetString("EMAIL_TO"),
		},
		RateLimit: RateLimitConfig{
			SubmissionMax:           v.GetInt("SUBMISSION_RATE_MAX"),
			SubmissionWindowMinutes: v.GetInt("SUBMISSION_RATE_WINDOW_MINUTES"),
		},
		Archive: ArchiveConfig{
			AccessKeyID:     v.GetString("ARCHIVE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("ARCHIVE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("ARCHIVE_BUCKET_NAME"),
			Endpoint:        v.GetString("ARCHIVE_ENDPOINT"),
			Region:          v.GetString("ARCHIVE_REGION"),
			ObjectKey:       v.GetString("ARCHIVE_OBJECT_KEY"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:      v.GetString("O11Y_SERVICE_NAME"),
			ServiceVersion:   v.GetString("O11Y_SERVICE_VERSION"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	// Store configuration
	switch c.Store.Driver {
	case StoreDriverFile:
		if c.Store.FilePath == "" {
			return fmt.Errorf("STORE_FILE_PATH is required for the file store")
		}
	case StoreDriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (expected %q or %q)",
			c.Store.Driver, StoreDriverFile, StoreDriverPostgres)
	}

	// Mail configuration: the relay is optional, but a configured relay must be complete
	if c.Mail.Enabled() {
		switch c.Mail.Provider {
		case MailProviderGmail:
			// Host and port are fixed for Gmail
		case MailProviderGeneric:
			if c.Mail.Host == "" {
				return fmt.Errorf("SMTP_HOST is required when EMAIL_SERVICE is %q", MailProviderGeneric)
			}
		default:
			return fmt.Errorf("unknown EMAIL_SERVICE %q (expected %q or %q)",
				c.Mail.Provider, MailProviderGmail, MailProviderGeneric)
		}
		if c.Mail.AdminTo == "" && c.Mail.From == "" {
			return fmt.Errorf("EMAIL_TO or EMAIL_FROM is required when the mail relay is configured")
		}
	}

	// Rate limiting policy
	if c.RateLimit.SubmissionMax <= 0 {
		return fmt.Errorf("SUBMISSION_RATE_MAX must be positive")
	}
	if c.RateLimit.SubmissionWindowMinutes <= 0 {
		return fmt.Errorf("SUBMISSION_RATE_WINDOW_MINUTES must be positive")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// Enabled reports whether the mail relay is configured. Mirrors the
// credential check used to decide whether notification emails are sent.
func (c *MailConfig) Enabled() bool {
	return c.Username != "" && c.Password != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
