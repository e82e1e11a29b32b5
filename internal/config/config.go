package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/penmark/penmark/internal/gravatar"
)

// Config holds the configuration for the penmark server.
type Config struct {
	// Listen is the address the penmark server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Session holds the session cookie configuration.
	Session *SessionConfig `yaml:"session" mapstructure:"session"`
	// Pagination holds the page sizes for article listings.
	Pagination *PaginationConfig `yaml:"pagination" mapstructure:"pagination"`
	// Gravatar holds the configuration for author avatars.
	Gravatar *GravatarConfig `yaml:"gravatar" mapstructure:"gravatar"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the sqlite database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// SessionConfig holds the session cookie configuration.
type SessionConfig struct {
	// Key is the key used to encrypt session data. If empty, a random
	// key is generated at startup and sessions won't survive restarts.
	Key string `yaml:"key" mapstructure:"key"`
	// MaxAge is the maximum age of a session in seconds.
	MaxAge int `yaml:"max_age" mapstructure:"max_age"`
	// Secure marks the session cookie as https-only.
	Secure bool `yaml:"secure" mapstructure:"secure"`
}

// PaginationConfig holds the page sizes for article listings.
type PaginationConfig struct {
	// HomeSize is the number of articles shown on the front page.
	HomeSize int `yaml:"home_size" mapstructure:"home_size"`
	// PageSize is the number of articles per page on the article list.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`
}

// GravatarConfig holds the configuration for author avatars.
type GravatarConfig struct {
	// Enabled indicates whether Gravatar avatars are enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// DefaultImage is the default image to use when no Gravatar is found.
	// Valid values: "404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"
	DefaultImage string `yaml:"default_image" mapstructure:"default_image"`
	// Rating is the maximum rating for Gravatar images.
	// Valid values: "g", "pg", "r", "x"
	Rating string `yaml:"rating" mapstructure:"rating"`
	// Size is the size of the Gravatar image in pixels (1-2048).
	Size int `yaml:"size" mapstructure:"size"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// If no config file is found, the defaults are used.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("PENMARK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.penmark")
		v.AddConfigPath("/etc/penmark")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with PENMARK_ prefix will override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3000")
	v.SetDefault("log_level", "info")

	v.SetDefault("database.path", "./data/penmark.db")

	v.SetDefault("session.key", "")
	v.SetDefault("session.max_age", 172800) // 48 hours
	v.SetDefault("session.secure", false)

	v.SetDefault("pagination.home_size", 5)
	v.SetDefault("pagination.page_size", 10)

	v.SetDefault("gravatar.enabled", false)
	v.SetDefault("gravatar.default_image", "robohash")
	v.SetDefault("gravatar.rating", "g")
	v.SetDefault("gravatar.size", 80)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing penmark config")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Session == nil {
		return fmt.Errorf("missing session config")
	}
	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("session max age must be positive")
	}
	if c.Session.Key == "" {
		log.Warn("No session key configured, a random one will be generated at startup")
	}

	if c.Pagination == nil {
		return fmt.Errorf("missing pagination config")
	}
	if c.Pagination.HomeSize <= 0 {
		return fmt.Errorf("pagination home size must be positive")
	}
	if c.Pagination.PageSize <= 0 {
		return fmt.Errorf("pagination page size must be positive")
	}

	if c.Gravatar != nil && c.Gravatar.Enabled {
		if c.Gravatar.DefaultImage != "" && !gravatar.IsValidDefaultImage(c.Gravatar.DefaultImage) {
			return fmt.Errorf("invalid gravatar default image: %s", c.Gravatar.DefaultImage)
		}
		if c.Gravatar.Rating != "" && !gravatar.IsValidRating(c.Gravatar.Rating) {
			return fmt.Errorf("invalid gravatar rating: %s", c.Gravatar.Rating)
		}
		if c.Gravatar.Size != 0 && !gravatar.IsValidSize(c.Gravatar.Size) {
			return fmt.Errorf("invalid gravatar size: %d", c.Gravatar.Size)
		}
	}

	return nil
}
