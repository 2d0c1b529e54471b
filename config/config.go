package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. SCRAPER_API_BASE_URL.
const EnvPrefix = "SCRAPER"

// Config represents the scraper configuration
type Config struct {
	API     APIConfig     `yaml:"api" envconfig:"API"`
	HTTP    HTTPConfig    `yaml:"http" envconfig:"HTTP"`
	Extract ExtractConfig `yaml:"extract" envconfig:"EXTRACT"`
	Crawl   CrawlConfig   `yaml:"crawl" envconfig:"CRAWL"`
	Log     LogConfig     `yaml:"log" envconfig:"LOG"`
}

// APIConfig describes the paginated upstream API.
type APIConfig struct {
	BaseURL  string `yaml:"base_url" envconfig:"BASE_URL"`
	Keyword  string `yaml:"keyword" envconfig:"KEYWORD"`
	PageSize int    `yaml:"page_size" envconfig:"PAGE_SIZE"`
}

// HTTPConfig is shared by the API fetcher and the detail extractor.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	UserAgent string        `yaml:"user_agent" envconfig:"USER_AGENT"`
}

// ExtractConfig holds the class token of the div whose text is collected.
type ExtractConfig struct {
	SelectorClass string `yaml:"selector_class" envconfig:"SELECTOR_CLASS"`
}

// CrawlConfig holds the page range and the pause after each page fetch.
type CrawlConfig struct {
	StartPage int           `yaml:"start_page" envconfig:"START_PAGE"`
	EndPage   int           `yaml:"end_page" envconfig:"END_PAGE"`
	PageDelay time.Duration `yaml:"page_delay" envconfig:"PAGE_DELAY"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  "https://example.com/api/search.php",
			Keyword:  "关键字",
			PageSize: 20,
		},
		HTTP: HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "brief-scraper/1.0",
		},
		Extract: ExtractConfig{
			SelectorClass: "className",
		},
		Crawl: CrawlConfig{
			StartPage: 1,
			EndPage:   2,
			PageDelay: time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyEnv overlays SCRAPER_* environment variables onto cfg. A .env file in
// the working directory is loaded first when present; variables already set
// in the process environment win over it.
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("failed to process environment: %w", err)
	}
	return nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL))
	}
	if c.API.PageSize < 1 {
		errs = append(errs, fmt.Errorf("api.page_size must be positive, got %d", c.API.PageSize))
	}
	if c.Extract.SelectorClass == "" {
		errs = append(errs, errors.New("extract.selector_class must not be empty"))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout))
	}
	if c.Crawl.PageDelay < 0 {
		errs = append(errs, fmt.Errorf("crawl.page_delay must not be negative, got %s", c.Crawl.PageDelay))
	}
	if c.Crawl.StartPage > c.Crawl.EndPage {
		errs = append(errs, fmt.Errorf("crawl.start_page (%d) must not exceed crawl.end_page (%d)",
			c.Crawl.StartPage, c.Crawl.EndPage))
	}

	return errors.Join(errs...)
}
