package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings, read from the environment.
type Config struct {
	// ServerListenAddr specifies the network address that the HTTP server will listen on.
	ServerListenAddr string `env:"SERVER_LISTEN_ADDR" envDefault:":3593"`
	// PublicHost is the public (external) base URL where the site is accessible.
	// Only its scheme and host are kept.
	PublicHost string `env:"PUBLIC_HOST" envDefault:"http://127.0.0.1:3593"`
	// FilmsEndpoint is the REST endpoint returning the films collection.
	FilmsEndpoint string `env:"FILMS_ENDPOINT" envDefault:"https://ghibliapi.vercel.app/films"`
	// PageSize is the number of cards per grid page.
	PageSize int `env:"PAGE_SIZE" envDefault:"6"`

	ServiceName        string `env:"SERVICE_NAME" envDefault:"ghibli-films"`
	ServiceVersion     string `env:"SERVICE_VERSION" envDefault:"0.0.1"`
	ServiceEnvironment string `env:"SERVICE_ENVIRONMENT" envDefault:"lcl"`
	// OTLPEndpoint is the gRPC collector address. Empty disables telemetry export.
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to env.ParseAs: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) normalize() error {
	u, err := url.Parse(c.PublicHost)
	if err != nil {
		return fmt.Errorf("failed to parse PUBLIC_HOST: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New("invalid PUBLIC_HOST, scheme and host are required")
	}
	c.PublicHost = fmt.Sprintf("%s://%s", u.Scheme, u.Host)

	endpoint, err := url.Parse(c.FilmsEndpoint)
	if err != nil {
		return fmt.Errorf("failed to parse FILMS_ENDPOINT: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return errors.New("invalid FILMS_ENDPOINT, only http and https are supported")
	}

	if c.PageSize <= 0 {
		return errors.New("invalid PAGE_SIZE, less than or equal to 0")
	}

	return nil
}
