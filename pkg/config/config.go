package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	FetchModeHTTP   = "http"
	FetchModeChrome = "chrome"
)

// Config stores all configuration for the application.
type Config struct {
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	BaseURL            string `mapstructure:"BASE_URL"`
	ListingPath        string `mapstructure:"LISTING_PATH"`
	PageParam          string `mapstructure:"PAGE_PARAM"`
	ProfileLinkPattern string `mapstructure:"PROFILE_LINK_PATTERN"`
	NameSelector       string `mapstructure:"NAME_SELECTOR"`
	AgeSelector        string `mapstructure:"AGE_SELECTOR"`
	SexSelector        string `mapstructure:"SEX_SELECTOR"`
	MaxPages           int    `mapstructure:"MAX_PAGES"`

	FetchMode             string  `mapstructure:"FETCH_MODE"`
	UserAgent             string  `mapstructure:"USER_AGENT"`
	RequestTimeoutSeconds int     `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	RequestsPerSecond     float64 `mapstructure:"REQUESTS_PER_SECOND"`

	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	CacheTTLMinutes int    `mapstructure:"CACHE_TTL_MINUTES"`

	PostgresURL    string `mapstructure:"POSTGRES_URL"`
	PushgatewayURL string `mapstructure:"PUSHGATEWAY_URL"`
	ServerPort     string `mapstructure:"SERVER_PORT"`

	OpenBrowser      bool `mapstructure:"OPEN_BROWSER"`
	OpenDelaySeconds int  `mapstructure:"OPEN_DELAY_SECONDS"`
	List             bool `mapstructure:"LIST"`
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":  "LOG_LEVEL",
	"log-format": "LOG_FORMAT",
	"fetch-mode": "FETCH_MODE",
	"base-url":   "BASE_URL",
	"max-pages":  "MAX_PAGES",
	"open":       "OPEN_BROWSER",
	"list":       "LIST",
	"port":       "SERVER_PORT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("BASE_URL", "https://www.sfspca.org")
	v.SetDefault("LISTING_PATH", "/adoptions/cats")
	v.SetDefault("PAGE_PARAM", "page")
	v.SetDefault("PROFILE_LINK_PATTERN", `adoptions/pet-details/\d+`)
	v.SetDefault("NAME_SELECTOR", ".field-name-title h1")
	v.SetDefault("AGE_SELECTOR", ".field-name-field-animal-age .field-item")
	v.SetDefault("SEX_SELECTOR", ".field-name-field-gender .field-item")
	v.SetDefault("MAX_PAGES", 0)

	v.SetDefault("FETCH_MODE", FetchModeHTTP)
	v.SetDefault("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 0) // 0 keeps the client default
	v.SetDefault("REQUESTS_PER_SECOND", 0)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL_MINUTES", 60)

	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("PUSHGATEWAY_URL", "")
	v.SetDefault("SERVER_PORT", "8080")

	v.SetDefault("OPEN_BROWSER", true)
	v.SetDefault("OPEN_DELAY_SECONDS", 2)
	v.SetDefault("LIST", false)
}

// Load reads configuration from an optional .env file, the environment and
// the given flags, in increasing order of precedence. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted away.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid BASE_URL %q: %w", c.BaseURL, err)
	}
	switch c.FetchMode {
	case FetchModeHTTP, FetchModeChrome:
	default:
		return fmt.Errorf("invalid FETCH_MODE %q, want %q or %q", c.FetchMode, FetchModeHTTP, FetchModeChrome)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("MAX_PAGES must not be negative")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("REQUESTS_PER_SECOND must not be negative")
	}
	return nil
}

// ListingURL is the bare URL of the first listing page.
func (c *Config) ListingURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.ListingPath
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

func (c *Config) OpenDelay() time.Duration {
	return time.Duration(c.OpenDelaySeconds) * time.Second
}
