package pages

import (
	"net/http"

	"github.com/blogicum/core/internal/pkg/render"
	"github.com/gin-gonic/gin"
)

// Handler serves the static info pages.
type Handler struct {
	renderer *render.Renderer
}

func NewHandler(renderer *render.Renderer) *Handler {
	return &Handler{renderer: renderer}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/pages")
	g.GET("/about", h.page("about.html"))
	g.GET("/rules", h.page("rules.html"))
}

func (h *Handler) page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.renderer.HTML(c, http.StatusOK, name, nil)
	}
}
