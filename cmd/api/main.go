package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DarboeDev/UTGSSA-HUB/internal/assets"
	"github.com/DarboeDev/UTGSSA-HUB/internal/auth"
	"github.com/DarboeDev/UTGSSA-HUB/internal/blogs"
	"github.com/DarboeDev/UTGSSA-HUB/internal/cache"
	"github.com/DarboeDev/UTGSSA-HUB/internal/config"
	"github.com/DarboeDev/UTGSSA-HUB/internal/db"
	"github.com/DarboeDev/UTGSSA-HUB/internal/events"
	"github.com/DarboeDev/UTGSSA-HUB/internal/handlers"
	"github.com/DarboeDev/UTGSSA-HUB/internal/leaders"
	appmw "github.com/DarboeDev/UTGSSA-HUB/internal/middleware"
	"github.com/DarboeDev/UTGSSA-HUB/internal/news"
	"github.com/DarboeDev/UTGSSA-HUB/internal/resources"
	"github.com/DarboeDev/UTGSSA-HUB/internal/validation"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// entityHandler is the read/write surface every content handler
// exposes. Public reads sit outside the auth gate, mutations inside.
type entityHandler interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Error("mongo connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = client.Disconnect(shutdownCtx)
	}()

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Error("index setup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := buildCache(ctx, cfg, log)
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			SessionTTL: time.Duration(cfg.SessionTTLDays) * 24 * time.Hour,
			Issuer:     "utgssa-hub",
		}
	} else {
		log.Warn("JWT_SECRET not set, admin routes disabled")
	}

	var assetClient *assets.Client
	if cfg.CloudinaryCloud != "" && cfg.CloudinaryKey != "" && cfg.CloudinarySecret != "" {
		assetClient = assets.NewClient(cfg.CloudinaryCloud, cfg.CloudinaryKey, cfg.CloudinarySecret, cfg.CloudinaryFolder)
	} else {
		log.Warn("cloudinary not configured, stored assets will not be released on delete")
	}

	val := validation.New()

	leaderHandler := leaders.NewHandler(
		leaders.NewService(leaders.NewRepository(cols.Leaders), assetClient, cfg.Timezone, log),
		val, log, store, cacheTTL)
	eventHandler := events.NewHandler(
		events.NewService(events.NewRepository(cols.Events), cfg.Timezone),
		val, log, store, cacheTTL)
	blogHandler := blogs.NewHandler(
		blogs.NewService(blogs.NewRepository(cols.Blogs), cfg.Timezone),
		val, log, store, cacheTTL)
	newsHandler := news.NewHandler(
		news.NewService(news.NewRepository(cols.News), cfg.Timezone),
		val, log, store, cacheTTL)
	resourceHandler := resources.NewHandler(
		resources.NewService(resources.NewRepository(cols.Resources), assetClient, cfg.Timezone, log),
		val, log, store, cacheTTL)

	server := &handlers.Server{
		Cfg:  cfg,
		Cols: cols,
		Val:  val,
		Log:  log,
		JWT:  jwtManager,
	}

	window := time.Duration(cfg.RateLimitWindowSec) * time.Second
	loginLimiter := appmw.NewRateLimiter(cfg.RateLimitLogin, window)
	likeLimiter := appmw.NewRateLimiter(cfg.RateLimitLikes, window)

	requireAuth := appmw.RequireAuth(jwtManager)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.RequestID())
	r.Use(appmw.Logger(log))
	r.Use(appmw.CORS(cfg.FrontendOrigin))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", server.Health)

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/login", server.Login)
			r.Post("/logout", server.Logout)
			r.With(requireAuth).Get("/me", server.Me)
		})

		mountEntity := func(r chi.Router, path string, h entityHandler) {
			r.Route(path, func(r chi.Router) {
				r.Get("/", h.List)
				r.Get("/{id}", h.Get)
				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Post("/", h.Create)
					r.Put("/{id}", h.Update)
					r.Delete("/{id}", h.Delete)
				})
			})
		}

		mountEntity(r, "/leaders", leaderHandler)
		mountEntity(r, "/events", eventHandler)
		mountEntity(r, "/blogs", blogHandler)
		mountEntity(r, "/news", newsHandler)
		mountEntity(r, "/resources", resourceHandler)

		r.With(likeLimiter.Middleware).Post("/blogs/{id}/like", blogHandler.Like)
		r.Get("/resources/{id}/download", resourceHandler.Download)
	})

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", cfg.ServerAddr), slog.String("env", cfg.Env))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case sig := <-stop:
		log.Info("shutting down", slog.String("signal", sig.String()))
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", slog.String("error", err.Error()))
		}
	}
}

// buildCache prefers REDIS_URL, then REDIS_ADDR, and falls back to the
// noop cache when neither is set or Redis is unreachable.
func buildCache(ctx context.Context, cfg *config.Config, log *slog.Logger) cache.Cache {
	var redisCache *cache.RedisCache
	switch {
	case cfg.RedisURL != "":
		c, err := cache.NewRedisFromURL(cfg.RedisURL)
		if err != nil {
			log.Warn("invalid REDIS_URL, caching disabled", slog.String("error", err.Error()))
			return cache.NewNoop()
		}
		redisCache = c
	case cfg.RedisAddr != "":
		redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return cache.NewNoop()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		log.Warn("redis unreachable, caching disabled", slog.String("error", err.Error()))
		return cache.NewNoop()
	}
	log.Info("redis cache enabled")
	return redisCache
}
