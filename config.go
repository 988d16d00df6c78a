package garden

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eringen/garden/components"
	"github.com/eringen/garden/content"
)

// SiteConfig holds all configuration for a garden site.
type SiteConfig struct {
	Name            string           `yaml:"name"`            // Page title suffix (default "Garden")
	URL             string           `yaml:"url"`             // Canonical URL (default "http://localhost:8080")
	Description     string           `yaml:"description"`     // Feed description
	Author          string           `yaml:"author"`          // Author name for JSON-LD and the about box
	Locale          string           `yaml:"locale"`          // BCP 47 tag (default "en-US")
	DefaultDateType content.DateType `yaml:"defaultDateType"` // created, modified or published

	ContentDir string   `yaml:"contentDir"` // Markdown notes (default "content")
	OutputDir  string   `yaml:"outputDir"`  // Build output (default "public")
	StaticDir  string   `yaml:"staticDir"`  // Copied to OutputDir/static (default "static")
	Avatar     string   `yaml:"avatar"`     // Image under ContentDir or StaticDir, resized on build
	Ignore     []string `yaml:"ignore"`     // Ignored note patterns

	Addr         string        `yaml:"addr"`         // Preview listen address (default ":8080")
	DatabasePath string        `yaml:"databasePath"` // SQLite page index (default "data/garden.db")
	PageCacheTTL time.Duration `yaml:"pageCacheTTL"` // Collection cache TTL (default 5min)
	Workers      int           `yaml:"workers"`      // Render workers (default GOMAXPROCS)
	Watch        bool          `yaml:"watch"`        // Re-ingest on content changes while serving
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Garden"
	}
	if c.URL == "" {
		c.URL = "http://localhost:8080"
	}
	if c.Locale == "" {
		c.Locale = "en-US"
	}
	if c.DefaultDateType == "" {
		c.DefaultDateType = content.Created
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if len(c.Ignore) == 0 {
		c.Ignore = []string{"private", "templates", ".obsidian"}
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/garden.db"
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 5 * time.Minute
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// componentConfig is the part of the site configuration components see.
func (c *SiteConfig) componentConfig(now func() time.Time) *components.Config {
	avatar := ""
	if c.Avatar != "" {
		avatar = avatarFile
	}
	return &components.Config{
		PageTitle:       c.Name,
		BaseURL:         c.URL,
		Locale:          c.Locale,
		DefaultDateType: c.DefaultDateType,
		Author:          c.Author,
		AvatarURL:       avatar,
		Now:             now,
	}
}

// LoadConfig reads a YAML site configuration. A missing file yields the
// zero config; environment variables override file values either way.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return SiteConfig{}, fmt.Errorf("garden: parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return SiteConfig{}, fmt.Errorf("garden: read config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *SiteConfig) applyEnv() {
	c.Name = EnvOr("GARDEN_NAME", c.Name)
	c.URL = EnvOr("GARDEN_URL", c.URL)
	c.Description = EnvOr("GARDEN_DESCRIPTION", c.Description)
	c.Author = EnvOr("GARDEN_AUTHOR", c.Author)
	c.Locale = EnvOr("GARDEN_LOCALE", c.Locale)
	c.DefaultDateType = content.DateType(EnvOr("GARDEN_DATE_TYPE", string(c.DefaultDateType)))
	c.ContentDir = EnvOr("GARDEN_CONTENT_DIR", c.ContentDir)
	c.OutputDir = EnvOr("GARDEN_OUTPUT_DIR", c.OutputDir)
	c.StaticDir = EnvOr("GARDEN_STATIC_DIR", c.StaticDir)
	c.Avatar = EnvOr("GARDEN_AVATAR", c.Avatar)
	c.Addr = EnvOr("GARDEN_ADDR", c.Addr)
	c.DatabasePath = EnvOr("GARDEN_DATABASE_PATH", c.DatabasePath)
	if v := os.Getenv("GARDEN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv("GARDEN_PAGE_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PageCacheTTL = d
		}
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the preview server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithClock fixes the time relative dates are measured against.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
