package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"
)

var (
	errDriverInvalid    = errors.New("DB_DRIVER must be one of sqlite, postgres")
	errDSNMissing       = errors.New("DB_DSN must be set when DB_DRIVER is postgres")
	errAPIURLInvalid    = errors.New("API_URL must be an absolute URL")
	errLogFormatInvalid = errors.New("LOG_FORMAT must be one of human, json")
)

type Config struct {
	APIURL  string `envconfig:"API_URL" required:"true"`
	Port    int    `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`

	// Empty means human readable in debug mode and JSON in release mode
	LogFormat string `envconfig:"LOG_FORMAT"`

	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS"`
	EnablePprof      bool   `envconfig:"ENABLE_PPROF" default:"false"`

	DB struct {
		Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
		Path   string `envconfig:"DB_PATH" default:"data/ledger.db"`
		DSN    string `envconfig:"DB_DSN"`
	}

	AMQP struct {
		URL      string `envconfig:"AMQP_URL"`
		Exchange string `envconfig:"AMQP_EXCHANGE" default:"ledger.events"`
	}

	Locale string `envconfig:"LEDGER_LOCALE" default:"en"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := c.URL(); err != nil {
		return err
	}

	switch c.DB.Driver {
	case "sqlite":
	case "postgres":
		if c.DB.DSN == "" {
			return errDSNMissing
		}
	default:
		return errDriverInvalid
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		return errLogFormatInvalid
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("LEDGER_LOCALE is not a valid language tag: %w", err)
	}

	return nil
}

// URL returns the parsed API URL.
func (c *Config) URL() (*url.URL, error) {
	u, err := url.Parse(c.APIURL)
	if err != nil || !u.IsAbs() {
		return nil, errAPIURLInvalid
	}

	return u, nil
}

// Language returns the tag activity descriptions are formatted with.
func (c *Config) Language() language.Tag {
	return language.Make(c.Locale)
}

// AllowOrigins returns the origins allowed for CORS requests.
func (c *Config) AllowOrigins() []string {
	return strings.Fields(c.CORSAllowOrigins)
}

// Address is the address the HTTP server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
