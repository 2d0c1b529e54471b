package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, 20, cfg.API.PageSize)
	assert.Equal(t, "className", cfg.Extract.SelectorClass)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, time.Second, cfg.Crawl.PageDelay)
	assert.Equal(t, 1, cfg.Crawl.StartPage)
	assert.Equal(t, 2, cfg.Crawl.EndPage)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
api:
  base_url: https://api.test/list.php
  keyword: golang
crawl:
  end_page: 5
  page_delay: 250ms
http:
  timeout: 3s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.test/list.php", cfg.API.BaseURL)
	assert.Equal(t, "golang", cfg.API.Keyword)
	assert.Equal(t, 20, cfg.API.PageSize, "page size falls back to default")
	assert.Equal(t, 1, cfg.Crawl.StartPage)
	assert.Equal(t, 5, cfg.Crawl.EndPage)
	assert.Equal(t, 250*time.Millisecond, cfg.Crawl.PageDelay)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "className", cfg.Extract.SelectorClass)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	path := writeConfigFile(t, "api: [not, a, map")
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SCRAPER_API_KEYWORD", "from-env")
	t.Setenv("SCRAPER_API_PAGE_SIZE", "50")
	t.Setenv("SCRAPER_CRAWL_PAGE_DELAY", "2s")
	t.Setenv("SCRAPER_EXTRACT_SELECTOR_CLASS", "brief")

	cfg := GetDefaultConfig()
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, "from-env", cfg.API.Keyword)
	assert.Equal(t, 50, cfg.API.PageSize)
	assert.Equal(t, 2*time.Second, cfg.Crawl.PageDelay)
	assert.Equal(t, "brief", cfg.Extract.SelectorClass)
	// untouched values survive the overlay
	assert.Equal(t, "https://example.com/api/search.php", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"single page", func(c *Config) { c.Crawl.StartPage, c.Crawl.EndPage = 3, 3 }, ""},
		{"zero delay", func(c *Config) { c.Crawl.PageDelay = 0 }, ""},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api.php" }, "api.base_url"},
		{"zero page size", func(c *Config) { c.API.PageSize = 0 }, "api.page_size"},
		{"empty selector", func(c *Config) { c.Extract.SelectorClass = "" }, "extract.selector_class"},
		{"zero timeout", func(c *Config) { c.HTTP.Timeout = 0 }, "http.timeout"},
		{"negative delay", func(c *Config) { c.Crawl.PageDelay = -time.Second }, "crawl.page_delay"},
		{"inverted range", func(c *Config) { c.Crawl.StartPage, c.Crawl.EndPage = 4, 2 }, "crawl.start_page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
