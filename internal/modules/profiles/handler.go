package profiles

import (
	"errors"
	"net/http"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/posts"
	"github.com/blogicum/core/internal/pkg/pagination"
	"github.com/blogicum/core/internal/pkg/render"
	"github.com/gin-gonic/gin"
)

// Handler serves profile pages and the self-edit form.
type Handler struct {
	svc      *Service
	posts    *posts.Service
	renderer *render.Renderer
}

func NewHandler(svc *Service, postsSvc *posts.Service, renderer *render.Renderer) *Handler {
	return &Handler{svc: svc, posts: postsSvc, renderer: renderer}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := r.Group("/profile")
	g.GET("/edit", authMW, h.editForm)
	g.POST("/edit", authMW, h.edit)
	g.GET("/:username", h.list)
}

// list GET /profile/:username
// Shows the author's complete post history, unpublished and future-dated
// posts included, to any visitor.
func (h *Handler) list(c *gin.Context) {
	profile, err := h.svc.GetByUsername(c.Param("username"))
	if err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	if profile == nil {
		h.renderer.NotFound(c)
		return
	}

	list, pag, err := h.posts.ListByAuthor(profile.ID, pagination.FromContext(c))
	if err != nil {
		h.renderer.ServerError(c, err)
		return
	}

	h.renderer.HTML(c, http.StatusOK, "profile.html", gin.H{
		"Profile":    profile,
		"Posts":      list,
		"Pagination": pag,
	})
}

// editForm GET /profile/edit  [auth]
func (h *Handler) editForm(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.renderProfileForm(c, profileValues(user), nil)
}

// edit POST /profile/edit  [auth]
// The edited profile is always the current user's, regardless of any URL or
// form hints. Cross-account edits are structurally impossible.
func (h *Handler) edit(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var f ProfileForm
	_ = c.ShouldBind(&f)
	if formErrs := f.Validate(); len(formErrs) > 0 {
		h.renderProfileForm(c, formValues(&f), formErrs)
		return
	}

	if err := h.svc.UpdateProfile(user, &f); err != nil {
		if errors.Is(err, errUsernameTaken) {
			h.renderProfileForm(c, formValues(&f), map[string]string{
				"username": "Имя пользователя уже занято.",
			})
			return
		}
		h.renderer.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile/"+f.Username)
}

func (h *Handler) renderProfileForm(c *gin.Context, values map[string]string, formErrs map[string]string) {
	h.renderer.HTML(c, http.StatusOK, "user_form.html", gin.H{
		"Values": values,
		"Errors": formErrs,
	})
}

func profileValues(u *models.UserModel) map[string]string {
	return map[string]string{
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
	}
}

func formValues(f *ProfileForm) map[string]string {
	return map[string]string{
		"username":   f.Username,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"email":      f.Email,
	}
}
