// Package inkwell is a personal blog publishing engine built with Go, Echo,
// and templ. Posts are authored as markdown files with YAML front matter
// (title, date, description, image, tags), stored in SQLite, and rendered
// server-side with Chroma-backed code highlighting, including per-line
// emphasis from code fence annotations like "go {2,4-6}".
package inkwell

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/okvist/inkwell/highlight"
	"github.com/okvist/inkwell/markdown"
	"github.com/okvist/inkwell/stats"
)

// App is the central inkwell application. It wires together the store,
// cache, markdown renderer, handlers, and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *PostCache
	Log      zerolog.Logger
	Markdown *markdown.Renderer

	highlighter  *highlight.Highlighter
	loginLimiter *LoginLimiter
	statsStore   *stats.Store
	customRoutes []func(*App)
}

// New creates an inkwell App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Log:    zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes the database, content, cache, middleware, and routes,
// then runs the server until it is shut down.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("inkwell: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkwell: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("inkwell: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.highlighter = highlight.New(a.Config.CodeStyle)
	a.Markdown = &markdown.Renderer{Code: a.highlighter}

	if err := a.LoadContent(a.Config.ContentDir); err != nil {
		return fmt.Errorf("inkwell: load content: %w", err)
	}

	if a.Config.StatsEnabled {
		statsStore, err := stats.NewStore(a.Config.StatsDatabasePath)
		if err != nil {
			return fmt.Errorf("inkwell: init stats: %w", err)
		}
		a.statsStore = statsStore
		if err := statsStore.InitSalt(); err != nil {
			return fmt.Errorf("inkwell: init stats salt: %w", err)
		}
		stop := statsStore.StartCleanupScheduler(a.Config.StatsRetentionDays, 24*time.Hour)
		defer stop()
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.Log.Info().Str("addr", a.Config.Addr).Str("site", a.Config.Name).Msg("starting server")
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/public/highlight.css", a.handleHighlightCSS)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)

	if a.statsStore != nil {
		h := stats.NewHandler(a.statsStore, a.Log)
		e.POST("/api/stats/hit", h.Hit)
		e.GET("/admin/stats/", func(c echo.Context) error {
			if !IsAdmin(c) {
				return c.Redirect(http.StatusSeeOther, "/admin/")
			}
			return h.Summary(c)
		})
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.statsStore != nil {
		a.statsStore.Close()
	}
	return nil
}
