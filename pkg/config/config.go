package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/newsnearme/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen         string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL        string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds and external links"`
		SessionTTL     time.Duration `yaml:"session_ttl" json:"session_ttl" jsonschema:"default=30m,description=How long an idle dashboard session is kept"`
		AllowedOrigins []string      `yaml:"allowed_origins" json:"allowed_origins" jsonschema:"description=Origins allowed to call the JSON API"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	API APIConfig `yaml:"api" json:"api" jsonschema:"description=Remote news API configuration"`

	UI UIConfig `yaml:"ui" json:"ui" jsonschema:"description=Dashboard defaults"`
}

// APIConfig holds settings of the remote news API client
type APIConfig struct {
	URL        string        `yaml:"url" json:"url" jsonschema:"default=/api/v1,description=API base URL; relative URLs are resolved against origin"`
	Origin     string        `yaml:"origin" json:"origin" jsonschema:"default=http://127.0.0.1:8000,description=Origin used to resolve a relative API URL"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Request timeout"`
	Attempts   int           `yaml:"attempts" json:"attempts" jsonschema:"default=1,minimum=1,description=Attempts per request; 1 disables retries"`
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=100ms,description=Initial delay between attempts"`
	RateLimit  float64       `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=0,minimum=0,description=Max requests per second to the API; 0 means unlimited"`
	Burst      int           `yaml:"burst" json:"burst" jsonschema:"default=5,minimum=1,description=Rate limiter burst size"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=NewsNearMe/1.0,description=User agent for API requests"`
}

// UIConfig holds dashboard defaults
type UIConfig struct {
	DefaultLimit int    `yaml:"default_limit" json:"default_limit" jsonschema:"default=5,enum=3,enum=5,enum=10,enum=15,enum=20,description=Initial news limit"`
	Title        string `yaml:"title" json:"title" jsonschema:"default=News Near Me,description=Page title"`
}

// Load reads configuration from a YAML file. Empty path means defaults only.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values with defaults
func setDefaults(cfg *Config) {
	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}
	if cfg.Server.SessionTTL == 0 {
		cfg.Server.SessionTTL = 30 * time.Minute
	}

	// set defaults for api
	if cfg.API.URL == "" {
		cfg.API.URL = "/api/v1"
	}
	if cfg.API.Origin == "" {
		cfg.API.Origin = "http://127.0.0.1:8000"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 10 * time.Second
	}
	if cfg.API.Attempts == 0 {
		cfg.API.Attempts = 1
	}
	if cfg.API.RetryDelay == 0 {
		cfg.API.RetryDelay = 100 * time.Millisecond
	}
	if cfg.API.Burst == 0 {
		cfg.API.Burst = 5
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = "NewsNearMe/1.0"
	}

	// set defaults for ui
	if cfg.UI.DefaultLimit == 0 {
		cfg.UI.DefaultLimit = domain.DefaultNewsLimit
	}
	if cfg.UI.Title == "" {
		cfg.UI.Title = "News Near Me"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.SessionTTL < time.Minute {
		return fmt.Errorf("server.session_ttl must be at least 1 minute")
	}

	// validate api config
	if _, err := cfg.API.BaseURL(); err != nil {
		return err
	}
	if cfg.API.Attempts < 1 {
		return fmt.Errorf("api.attempts must be at least 1")
	}
	if cfg.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must be non-negative")
	}
	if cfg.API.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1")
	}

	// validate ui config
	if !domain.ValidLimit(cfg.UI.DefaultLimit) {
		return fmt.Errorf("ui.default_limit must be one of %v", domain.NewsLimits())
	}

	return nil
}

// BaseURL returns absolute API base URL without trailing slash.
// A relative url is resolved against origin.
func (a APIConfig) BaseURL() (string, error) {
	u, err := url.Parse(a.URL)
	if err != nil {
		return "", fmt.Errorf("parse api.url: %w", err)
	}
	if !u.IsAbs() {
		origin, err := url.Parse(a.Origin)
		if err != nil {
			return "", fmt.Errorf("parse api.origin: %w", err)
		}
		if origin.Scheme == "" || origin.Host == "" {
			return "", fmt.Errorf("api.origin must be an absolute URL, got %q", a.Origin)
		}
		u = origin.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("api.url scheme must be http or https, got %q", u.Scheme)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
