package categories

import (
	"net/http"

	"github.com/blogicum/core/internal/modules/posts"
	"github.com/blogicum/core/internal/pkg/pagination"
	"github.com/blogicum/core/internal/pkg/render"
	"github.com/gin-gonic/gin"
)

// Handler serves the category listing page.
type Handler struct {
	svc      *Service
	posts    *posts.Service
	renderer *render.Renderer
}

func NewHandler(svc *Service, postsSvc *posts.Service, renderer *render.Renderer) *Handler {
	return &Handler{svc: svc, posts: postsSvc, renderer: renderer}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/category/:slug", h.list)
}

// list GET /category/:slug
func (h *Handler) list(c *gin.Context) {
	slug := c.Param("slug")

	cat, err := h.svc.GetPublishedBySlug(slug)
	if err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	if cat == nil {
		h.renderer.NotFound(c)
		return
	}

	list, pag, err := h.posts.ListByCategory(slug, pagination.FromContext(c))
	if err != nil {
		h.renderer.ServerError(c, err)
		return
	}

	h.renderer.HTML(c, http.StatusOK, "category.html", gin.H{
		"Category":   cat,
		"Posts":      list,
		"Pagination": pag,
	})
}
