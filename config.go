package inkwell

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// SiteConfig holds all configuration for an inkwell site. Every field can be
// populated from the environment via LoadConfig; struct values set directly
// win over the defaults.
type SiteConfig struct {
	Name        string `envconfig:"SITE_NAME" default:"Blog"`
	URL         string `envconfig:"SITE_URL" default:"http://localhost:3000"`
	Description string `envconfig:"SITE_DESCRIPTION"`
	Author      string `envconfig:"SITE_AUTHOR"`

	Addr         string `envconfig:"ADDR" default:":3000"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"data/blog.db"`
	ContentDir   string `envconfig:"CONTENT_DIR" default:"content"`
	StaticDir    string `envconfig:"STATIC_DIR" default:"public"`

	// CodeStyle names the Chroma style used for code blocks.
	CodeStyle string `envconfig:"CODE_STYLE" default:"github-dark"`

	StatsEnabled       bool   `envconfig:"STATS_ENABLED" default:"true"`
	StatsDatabasePath  string `envconfig:"STATS_DATABASE_PATH" default:"data/stats.db"`
	StatsRetentionDays int    `envconfig:"STATS_RETENTION_DAYS" default:"365"`

	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	SessionSecret string `envconfig:"SESSION_SECRET"`
	CookieSecure  bool   `envconfig:"COOKIE_SECURE"`

	PostCacheTTL time.Duration `envconfig:"POST_CACHE_TTL" default:"5m"`
}

// LoadConfig reads SiteConfig from environment variables.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	err := envconfig.Process("", &cfg)
	return cfg, err
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes, before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger replaces the default stderr logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) {
		a.Log = log
	}
}
