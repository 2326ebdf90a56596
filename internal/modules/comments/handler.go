package comments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/posts"
	"github.com/blogicum/core/internal/pkg/render"
	"github.com/gin-gonic/gin"
)

// Handler serves comment create/edit/delete flows under a post.
type Handler struct {
	svc      *Service
	posts    *posts.Service
	renderer *render.Renderer
}

func NewHandler(svc *Service, postsSvc *posts.Service, renderer *render.Renderer) *Handler {
	return &Handler{svc: svc, posts: postsSvc, renderer: renderer}
}

// RegisterRoutes mounts comment routes; all of them require a login.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := r.Group("/posts", authMW)
	g.POST("/:postId/comment", h.create)

	owned := g.Group("", middleware.OwnerOnly(h.commentOwner, h.onOwnerError))
	owned.GET("/:postId/edit_comment/:commentId", h.editForm)
	owned.POST("/:postId/edit_comment/:commentId", h.edit)
	owned.GET("/:postId/delete_comment/:commentId", h.deleteForm)
	owned.POST("/:postId/delete_comment/:commentId", h.delete)
}

// create POST /posts/:postId/comment  [auth]
// The target post must be publicly visible; the author of a hidden post
// cannot comment on it either.
func (h *Handler) create(c *gin.Context) {
	post, err := h.posts.GetPublic(c.Param("postId"))
	if err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	if post == nil {
		h.renderer.NotFound(c)
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		// Invalid submission re-renders the detail page with the error.
		comments, err := h.svc.ListByPost(post.ID)
		if err != nil {
			h.renderer.ServerError(c, err)
			return
		}
		h.renderer.HTML(c, http.StatusOK, "detail.html", gin.H{
			"Post":         post,
			"Comments":     comments,
			"CommentError": "Обязательное поле.",
		})
		return
	}

	if _, err := h.svc.Create(post.ID, middleware.CurrentUserID(c), text); err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+post.ID)
}

// editForm GET /posts/:postId/edit_comment/:commentId  [auth+owner]
func (h *Handler) editForm(c *gin.Context) {
	comment, ok := h.loadOwned(c)
	if !ok {
		return
	}
	h.renderer.HTML(c, http.StatusOK, "comment_form.html", gin.H{
		"Comment":  comment,
		"Action":   commentActionURL(comment, "edit_comment"),
		"IsDelete": false,
	})
}

// edit POST /posts/:postId/edit_comment/:commentId  [auth+owner]
func (h *Handler) edit(c *gin.Context) {
	comment, ok := h.loadOwned(c)
	if !ok {
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		h.renderer.HTML(c, http.StatusOK, "comment_form.html", gin.H{
			"Comment":  comment,
			"Action":   commentActionURL(comment, "edit_comment"),
			"IsDelete": false,
			"Error":    "Обязательное поле.",
		})
		return
	}

	if err := h.svc.Update(comment, text); err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+comment.PostID)
}

// deleteForm GET /posts/:postId/delete_comment/:commentId  [auth+owner]
func (h *Handler) deleteForm(c *gin.Context) {
	comment, ok := h.loadOwned(c)
	if !ok {
		return
	}
	h.renderer.HTML(c, http.StatusOK, "comment_form.html", gin.H{
		"Comment":  comment,
		"Action":   commentActionURL(comment, "delete_comment"),
		"IsDelete": true,
	})
}

// delete POST /posts/:postId/delete_comment/:commentId  [auth+owner]
func (h *Handler) delete(c *gin.Context) {
	comment, ok := h.loadOwned(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(comment.ID); err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+comment.PostID)
}

// loadOwned fetches the comment and checks it belongs to the post in the URL.
func (h *Handler) loadOwned(c *gin.Context) (*models.CommentModel, bool) {
	comment, err := h.svc.GetByID(c.Param("commentId"))
	if err != nil {
		h.renderer.ServerError(c, err)
		return nil, false
	}
	if comment == nil || comment.PostID != c.Param("postId") {
		h.renderer.NotFound(c)
		return nil, false
	}
	return comment, true
}

func (h *Handler) commentOwner(c *gin.Context) (string, string, error) {
	comment, err := h.svc.GetByID(c.Param("commentId"))
	if err != nil {
		return "", "", err
	}
	if comment == nil || comment.PostID != c.Param("postId") {
		return "", "", middleware.ErrNotFound
	}
	return comment.AuthorID, "/posts/" + comment.PostID, nil
}

func (h *Handler) onOwnerError(c *gin.Context, err error) {
	if errors.Is(err, middleware.ErrNotFound) {
		h.renderer.NotFound(c)
		return
	}
	h.renderer.ServerError(c, err)
}

func commentActionURL(comment *models.CommentModel, verb string) string {
	return "/posts/" + comment.PostID + "/" + verb + "/" + comment.ID
}
