package app

import (
	"net/http"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/modules/accounts"
	"github.com/blogicum/core/internal/modules/categories"
	"github.com/blogicum/core/internal/modules/comments"
	"github.com/blogicum/core/internal/modules/locations"
	"github.com/blogicum/core/internal/modules/pages"
	"github.com/blogicum/core/internal/modules/posts"
	"github.com/blogicum/core/internal/modules/profiles"
	"github.com/blogicum/core/internal/pkg/mediastore"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(media mediastore.Store) {
	a.router.NoRoute(func(c *gin.Context) {
		a.renderer.NotFound(c)
	})
	a.router.NoMethod(func(c *gin.Context) {
		a.renderer.NotFound(c)
	})

	if a.cfg.Media.S3.Bucket == "" {
		a.router.Static("/media", a.cfg.Media.Dir)
	}

	root := a.router.Group("/")
	authMW := middleware.Auth(a.db)

	postsSvc := posts.NewService(a.db)
	commentsSvc := comments.NewService(a.db)

	posts.NewHandler(postsSvc, commentsSvc, locations.NewService(a.db), media, a.renderer).RegisterRoutes(root, authMW)
	comments.NewHandler(commentsSvc, postsSvc, a.renderer).RegisterRoutes(root, authMW)
	categories.NewHandler(categories.NewService(a.db), postsSvc, a.renderer).RegisterRoutes(root)
	profiles.NewHandler(profiles.NewService(a.db), postsSvc, a.renderer).RegisterRoutes(root, authMW)
	accounts.NewHandler(accounts.NewService(a.db), a.renderer, !a.cfg.IsDev()).RegisterRoutes(root, authMW)
	pages.NewHandler(a.renderer).RegisterRoutes(root)

	a.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
}
