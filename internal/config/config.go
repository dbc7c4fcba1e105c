package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPAddr       string
	StoreDriver    string
	DatabaseURL    string
	MigrationsPath string
	MongoURI       string
	MongoDatabase  string

	JWTSecret string
	JWTIssuer string

	Timezone      string
	DefaultLocale string
	LogLevel      string

	DiscordToken             string
	DiscordAnnounceChannelID string

	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

// Load reads the configuration from the environment and validates it. A
// .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// .env is optional when the variables come from the environment (Docker, CI, ...).
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:                 getenv("HTTP_ADDR", ":8080"),
		StoreDriver:              strings.ToLower(getenv("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		MigrationsPath:           getenv("MIGRATIONS_PATH", "migrations"),
		MongoURI:                 os.Getenv("MONGO_URI"),
		MongoDatabase:            getenv("MONGO_DATABASE", "campusevents"),
		JWTSecret:                os.Getenv("JWT_SECRET"),
		JWTIssuer:                getenv("JWT_ISSUER", "campusevents"),
		Timezone:                 getenv("CAMPUS_TIMEZONE", "UTC"),
		DefaultLocale:            getenv("DEFAULT_LOCALE", "en"),
		LogLevel:                 getenv("LOG_LEVEL", "info"),
		DiscordToken:             os.Getenv("DISCORD_TOKEN"),
		DiscordAnnounceChannelID: os.Getenv("DISCORD_ANNOUNCE_CHANNEL_ID"),
		CORSAllowedOrigins:       splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
	}

	timeout, err := time.ParseDuration(getenv("REQUEST_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("config: REQUEST_TIMEOUT is not a duration: %w", err)
	}
	cfg.RequestTimeout = timeout

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applies the rules on the loaded configuration.
func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			// Useful default for local runs.
			c.DatabaseURL = "postgres://localhost:5432/campusevents?sslmode=disable"
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	case DriverMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			c.MongoURI = "mongodb://localhost:27017/?replicaSet=rs0"
		}
		if !strings.HasPrefix(c.MongoURI, "mongodb://") && !strings.HasPrefix(c.MongoURI, "mongodb+srv://") {
			return fmt.Errorf("config: invalid MONGO_URI (%q): expected a mongodb:// or mongodb+srv:// URI", c.MongoURI)
		}
		if strings.TrimSpace(c.MongoDatabase) == "" {
			return fmt.Errorf("config: MONGO_DATABASE cannot be empty")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: STORE_DRIVER must be one of postgres, mongo, memory (got %q)", c.StoreDriver)
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		if c.StoreDriver != DriverMemory {
			return fmt.Errorf("config: JWT_SECRET is required")
		}
		c.JWTSecret = "dev-secret"
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: invalid CAMPUS_TIMEZONE (%q): %w", c.Timezone, err)
	}

	if (c.DiscordToken == "") != (c.DiscordAnnounceChannelID == "") {
		return fmt.Errorf("config: DISCORD_TOKEN and DISCORD_ANNOUNCE_CHANNEL_ID must be set together")
	}
	for _, r := range c.DiscordAnnounceChannelID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_ANNOUNCE_CHANNEL_ID must be a Discord channel id (digits only)")
		}
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// AnnouncementsEnabled reports whether new events are posted to Discord.
func (c *Config) AnnouncementsEnabled() bool {
	return c.DiscordToken != "" && c.DiscordAnnounceChannelID != ""
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
