// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/olegiv/studio-go/internal/api"
	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/cache"
	"github.com/olegiv/studio-go/internal/config"
	"github.com/olegiv/studio-go/internal/handler"
	"github.com/olegiv/studio-go/internal/imaging"
	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/seo"
	"github.com/olegiv/studio-go/internal/session"
	"github.com/olegiv/studio-go/internal/version"
	"github.com/olegiv/studio-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard admin CRUD handler methods.
type crudHandlers struct {
	List       http.HandlerFunc
	NewForm    http.HandlerFunc
	Create     http.HandlerFunc
	EditForm   http.HandlerFunc
	Update     http.HandlerFunc
	DelConfirm http.HandlerFunc
	Delete     http.HandlerFunc
}

// registerCRUD registers standard admin CRUD routes for a resource.
// Routes: GET base, GET base/new, POST base, GET base/{id}/edit,
// POST base/{id}/edit, GET base/{id}/delete, POST base/{id}/delete.
// Mutations are POST only; the backend PUT/DELETE translation happens
// in the API client, not in the router.
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(base+handler.RouteSuffixEdit, h.EditForm)
	r.Post(base+handler.RouteSuffixEdit, h.Update)
	r.Get(base+handler.RouteSuffixDelete, h.DelConfirm)
	r.Post(base+handler.RouteSuffixDelete, h.Delete)
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	hashPassword := flag.String("hash-password", "", "Hash a password for STUDIO_ADMIN_PASSWORD_HASH and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "studio - Design studio site frontend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_API_URL             Backend API origin (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SESSION_SECRET      Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_ADMIN_EMAIL         Admin account email (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_ADMIN_PASSWORD_HASH Admin password hash (required, see -hash-password)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SERVER_PORT         Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_ENV                 Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SITE_URL            Canonical site origin for sitemap links\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_REDIS_URL           Redis URL for the page cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_REVALIDATE_SECS     Public page revalidation window (default: 1800)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("studio %s\n", info)
		os.Exit(0)
	}

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			slog.Error("hashing password", "error", err)
			os.Exit(1)
		}
		_, _ = fmt.Println(hash)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure the data directory exists before opening the session store
	if err := os.MkdirAll(filepath.Dir(cfg.SessionDBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("opening session store", "path", cfg.SessionDBPath)
	db, err := session.OpenStore(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing session store", "error", err)
		}
	}(db)

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Page cache: rendered public pages are served from here until the
	// revalidation window passes or an admin mutation clears them.
	pageCache := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.RevalidateWindow(),
		MaxEntries: cfg.CacheMaxSize,
	})
	defer func() {
		if err := pageCache.Close(); err != nil {
			slog.Error("error closing page cache", "error", err)
		}
	}()

	// Backend API client
	apiClient := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APIRequestTimeout(),
		Logger:  logger,
	})
	slog.Info("backend API client initialized", "base_url", cfg.APIBaseURL, "timeout", cfg.APIRequestTimeout())

	// Local preview thumbnails for admin list screens
	previewer, err := imaging.NewPreviewer(cfg.PreviewsDir)
	if err != nil {
		return fmt.Errorf("initializing previewer: %w", err)
	}

	// Template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Scheduled full page cache flush. Entry TTLs handle routine
	// revalidation; the nightly flush drops accumulated query-string
	// variants that would otherwise only leave the cache via LRU.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		if err := pageCache.Clear(context.Background()); err != nil {
			slog.Error("scheduled page cache flush failed", "error", err)
			return
		}
		slog.Info("page cache flushed on schedule")
	}); err != nil {
		return fmt.Errorf("scheduling page cache flush: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// CSRF protection for login and admin routes
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Initialize handlers
	frontendHandler := handler.NewFrontendHandler(apiClient, renderer, seo.Defaults{
		SiteName:    cfg.SiteName,
		Description: cfg.SiteDescription,
	}, cfg.SiteURL, logger)
	authHandler := handler.NewAuthHandler(cfg, renderer, sessionManager, loginProtection)
	adminHandler := handler.NewAdminHandler(apiClient, renderer, sessionManager, pageCache, previewer)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.Use(sessionManager.LoadAndSave)

	// Health check route
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","version":%q}`+"\n", versionInfo.Version)
	})

	// Public frontend routes, served through the page cache
	r.Group(func(r chi.Router) {
		r.Use(middleware.PageCache(middleware.PageCacheConfig{
			Cache:     pageCache,
			TTL:       cfg.RevalidateWindow(),
			KeyPrefix: "page:",
			Logger:    logger,
		}))

		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get(handler.RouteBlog, frontendHandler.Blog)
		r.Get(handler.RouteBlog+handler.RouteParamSlug, frontendHandler.BlogPost)
		r.Get(handler.RouteProjects, frontendHandler.Projects)
		r.Get(handler.RouteMediaServices, frontendHandler.Services)
		r.Get(handler.RouteAbout, frontendHandler.About)
		r.Get(handler.RouteContact, frontendHandler.Contact)
	})

	// Sitemap and robots are cheap to build and should never serve stale
	// URLs, so they bypass the page cache.
	r.Get("/sitemap.xml", frontendHandler.Sitemap)
	r.Get("/robots.txt", frontendHandler.Robots)

	// Auth routes (public, with CSRF and rate limiting)
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)
	})

	// Admin routes (protected with CSRF)
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))

		r.Get(handler.RouteRoot, adminHandler.Dashboard)
		r.Post("/previews", adminHandler.ImagePreview)

		// Blog post management routes
		registerCRUD(r, handler.RoutePosts, crudHandlers{
			List: adminHandler.ListPosts, NewForm: adminHandler.NewPostForm, Create: adminHandler.CreatePost,
			EditForm: adminHandler.EditPostForm, Update: adminHandler.UpdatePost,
			DelConfirm: adminHandler.DeletePostConfirm, Delete: adminHandler.DeletePost,
		})
		r.Post(handler.RoutePosts+handler.RouteSuffixStatus, adminHandler.TogglePostStatus)

		// Project management routes
		registerCRUD(r, handler.RouteAdminProjects, crudHandlers{
			List: adminHandler.ListAdminProjects, NewForm: adminHandler.NewProjectForm, Create: adminHandler.CreateProject,
			EditForm: adminHandler.EditProjectForm, Update: adminHandler.UpdateProject,
			DelConfirm: adminHandler.DeleteProjectConfirm, Delete: adminHandler.DeleteProject,
		})

		// Project category management routes
		registerCRUD(r, handler.RouteCategories, crudHandlers{
			List: adminHandler.ListAdminCategories, NewForm: adminHandler.NewCategoryForm, Create: adminHandler.CreateCategory,
			EditForm: adminHandler.EditCategoryForm, Update: adminHandler.UpdateCategory,
			DelConfirm: adminHandler.DeleteCategoryConfirm, Delete: adminHandler.DeleteCategory,
		})
		r.Post(handler.RouteCategories+handler.RouteSuffixMove, adminHandler.MoveCategory)

		// Media service management routes
		registerCRUD(r, handler.RouteServices, crudHandlers{
			List: adminHandler.ListAdminServices, NewForm: adminHandler.NewServiceForm, Create: adminHandler.CreateService,
			EditForm: adminHandler.EditServiceForm, Update: adminHandler.UpdateService,
			DelConfirm: adminHandler.DeleteServiceConfirm, Delete: adminHandler.DeleteService,
		})
		r.Post(handler.RouteServices+"/{id}/features", adminHandler.AddFeature)
		r.Post(handler.RouteServices+handler.RouteFeaturesFeatureID, adminHandler.UpdateFeature)
		r.Post(handler.RouteServices+handler.RouteFeaturesFeatureID+"/delete", adminHandler.DeleteFeature)
		r.Post(handler.RouteServices+"/{id}/media", adminHandler.AddMediaPair)
		r.Post(handler.RouteServices+handler.RouteMediaPairID, adminHandler.UpdateMediaPair)
		r.Post(handler.RouteServices+handler.RouteMediaPairID+"/delete", adminHandler.DeleteMediaPair)

		// Video management routes. The hero slot is addressed explicitly;
		// named slots go through the {name} parameter.
		r.Get(handler.RouteVideos, adminHandler.Videos)
		r.Post(handler.RouteVideos+"/hero", adminHandler.UploadHeroVideo)
		r.Post(handler.RouteVideos+"/hero/delete", adminHandler.DeleteHeroVideo)
		r.Post(handler.RouteVideos+"/{name}", adminHandler.UploadServiceVideo)
		r.Post(handler.RouteVideos+"/{name}/delete", adminHandler.DeleteServiceVideo)

		// SEO settings management routes
		registerCRUD(r, handler.RouteSEO, crudHandlers{
			List: adminHandler.ListSEO, NewForm: adminHandler.NewSEOForm, Create: adminHandler.CreateSEO,
			EditForm: adminHandler.EditSEOForm, Update: adminHandler.UpdateSEO,
			DelConfirm: adminHandler.DeleteSEOConfirm, Delete: adminHandler.DeleteSEO,
		})
	})

	// Static file serving from the embedded filesystem
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	// Static assets: cache for 1 year
	staticHandler := middleware.StaticCache(31536000)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/*", staticHandler)

	// Serve generated preview thumbnails. Previews are content-addressed
	// by random name, so a week of caching is safe.
	previewsHandler := middleware.StaticCache(604800)(http.StripPrefix("/previews/", http.FileServer(http.Dir(previewer.Dir()))))
	r.Handle("/previews/*", previewsHandler)

	// 404 Not Found handler
	r.NotFound(frontendHandler.NotFound)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Allow for large video uploads to the backend
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
