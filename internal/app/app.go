package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blogicum/core/internal/config"
	"github.com/blogicum/core/internal/database"
	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/pkg/cron"
	"github.com/blogicum/core/internal/pkg/mediastore"
	pkgredis "github.com/blogicum/core/internal/pkg/redis"
	"github.com/blogicum/core/internal/pkg/render"
	"github.com/blogicum/core/internal/pkg/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	db       *gorm.DB
	redis    *pkgredis.Client
	renderer *render.Renderer
	logger   *zap.Logger
	cron     *cron.Scheduler
}

// New initializes the application: config → DB → Redis → templates → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	renderer, err := render.New(logger)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	media, err := mediastore.New(cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("media store: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		renderer.ServerError(c, fmt.Errorf("panic: %v", recovered))
	}))
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.OptionalAuth(db))
	router.Use(middleware.RateLimit(rc.Raw()))
	router.Use(middleware.CSRF(!cfg.IsDev(), renderer.Forbidden))

	app := &App{
		cfg:      cfg,
		router:   router,
		db:       db,
		redis:    rc,
		renderer: renderer,
		logger:   logger,
		cron:     cron.New(logger),
	}
	app.registerRoutes(media)

	app.cron.Register(cron.Job{
		Name:     "sessions.purge",
		Interval: 6 * time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := session.PurgeExpired(db.WithContext(ctx), time.Now())
			if err == nil && n > 0 {
				logger.Info("purged stale sessions", zap.Int64("count", n))
			}
			return err
		},
	})
	app.cron.Start()

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background jobs and closes connections.
func (a *App) Shutdown() {
	a.cron.Stop()
	_ = a.redis.Close()
}
