package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the bookshelf server and its dependencies.
type Config struct {
	// Listen is the address the bookshelf server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// SessionKey is the key used to authenticate session cookies.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// TemplateGlob is the glob pattern for the HTML templates.
	TemplateGlob string `yaml:"template_glob" mapstructure:"template_glob"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// GoogleBooks holds the configuration for the Google Books catalog API.
	GoogleBooks *GoogleBooksConfig `yaml:"google_books" mapstructure:"google_books"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// GoogleBooksConfig holds the configuration for the Google Books catalog API.
type GoogleBooksConfig struct {
	// URL is the base URL of the Google Books volumes endpoint.
	URL string `yaml:"url" mapstructure:"url"`
	// APIKey is the API key passed on every catalog request.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// HomeSubject is the fixed subject query rendered on the home page.
	HomeSubject string `yaml:"home_subject" mapstructure:"home_subject"`
	// HomeLimit is the number of results fetched for the home page.
	HomeLimit int `yaml:"home_limit" mapstructure:"home_limit"`
	// SearchLimit is the maximum number of results fetched on the search page.
	SearchLimit int `yaml:"search_limit" mapstructure:"search_limit"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	// bind some weirdly unsupported nested env vars
	bindNestedEnv(v)

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("BOOKSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bookshelf")
		v.AddConfigPath("/etc/bookshelf")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Some environment variables can be set with the BOOKSHELF_ prefix to override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3003")
	v.SetDefault("session_key", "")
	v.SetDefault("session_max_age", 172800) // 48 hours
	v.SetDefault("template_glob", "web/templates/*.html")

	// Database defaults
	v.SetDefault("database.path", "./data/bookshelf.db")

	// Google Books defaults
	v.SetDefault("google_books.url", "https://www.googleapis.com/books/v1")
	v.SetDefault("google_books.api_key", "")
	v.SetDefault("google_books.home_subject", "subject:fiction")
	v.SetDefault("google_books.home_limit", 10)
	v.SetDefault("google_books.search_limit", 20)
}

// the auto env function from viper only works for nested structs, if the struct to which a value binds isn't nil.
func bindNestedEnv(v *viper.Viper) {
	v.MustBindEnv("database.path", "BOOKSHELF_DATABASE_PATH")
	v.MustBindEnv("google_books.url", "BOOKSHELF_GOOGLE_BOOKS_URL")
	v.MustBindEnv("google_books.api_key", "BOOKSHELF_GOOGLE_BOOKS_API_KEY")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing bookshelf config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.GoogleBooks == nil {
		return fmt.Errorf("missing google books config")
	}
	if c.GoogleBooks.URL == "" {
		return fmt.Errorf("google books URL is required")
	}
	if c.GoogleBooks.HomeLimit <= 0 {
		return fmt.Errorf("google books home limit must be greater than 0")
	}
	if c.GoogleBooks.SearchLimit <= 0 {
		return fmt.Errorf("google books search limit must be greater than 0")
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = urlSanitize(c.Listen)

	if c.GoogleBooks != nil {
		c.GoogleBooks.URL = urlSanitize(c.GoogleBooks.URL)
	}
}

func urlSanitize(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}
