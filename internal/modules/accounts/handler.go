package accounts

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/pkg/render"
	sessionpkg "github.com/blogicum/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
)

// Handler serves login, logout and registration pages.
type Handler struct {
	svc      *Service
	renderer *render.Renderer
	secure   bool
}

func NewHandler(svc *Service, renderer *render.Renderer, secure bool) *Handler {
	return &Handler{svc: svc, renderer: renderer, secure: secure}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := r.Group("/auth")
	g.GET("/login", h.loginForm)
	g.POST("/login", h.login)
	g.GET("/registration", h.registrationForm)
	g.POST("/registration", h.register)
	g.POST("/logout", authMW, h.logout)
}

// loginForm GET /auth/login
func (h *Handler) loginForm(c *gin.Context) {
	h.renderer.HTML(c, http.StatusOK, "login.html", gin.H{
		"Next": c.Query("next"),
	})
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, _, err := h.svc.Login(username, password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			h.renderer.HTML(c, http.StatusOK, "login.html", gin.H{
				"Error":    "Неверное имя пользователя или пароль.",
				"Username": strings.TrimSpace(username),
				"Next":     c.PostForm("next"),
			})
			return
		}
		h.renderer.ServerError(c, err)
		return
	}

	h.setTokenCookie(c, token, int(sessionpkg.DefaultTTL.Seconds()))

	next := c.PostForm("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}
	c.Redirect(http.StatusSeeOther, next)
}

// registrationForm GET /auth/registration
func (h *Handler) registrationForm(c *gin.Context) {
	h.renderer.HTML(c, http.StatusOK, "registration.html", gin.H{
		"Values": map[string]string{},
	})
}

// register POST /auth/registration
func (h *Handler) register(c *gin.Context) {
	var f RegisterForm
	_ = c.ShouldBind(&f)

	formErrs := f.Validate()
	if len(formErrs) == 0 {
		if _, err := h.svc.Register(&f); err != nil {
			if errors.Is(err, errUsernameTaken) {
				formErrs["username"] = "Имя пользователя уже занято."
			} else {
				h.renderer.ServerError(c, err)
				return
			}
		}
	}

	if len(formErrs) > 0 {
		h.renderer.HTML(c, http.StatusOK, "registration.html", gin.H{
			"Errors": formErrs,
			"Values": map[string]string{
				"username":   f.Username,
				"first_name": f.FirstName,
				"last_name":  f.LastName,
				"email":      f.Email,
			},
		})
		return
	}

	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// logout POST /auth/logout  [auth]
func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Logout(middleware.CurrentUserID(c), middleware.CurrentSessionID(c)); err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	h.setTokenCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", h.secure, true)
}
