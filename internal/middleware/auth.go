package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blogicum/core/internal/models"
	jwtpkg "github.com/blogicum/core/internal/pkg/jwt"
	sessionpkg "github.com/blogicum/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextKeyUser   = "current_user"
	ContextKeyUserID = "user_id"
	ContextKeySID    = "session_id"

	// TokenCookie carries the signed login token.
	TokenCookie = "blogicum_token"

	// LoginPath is where unauthenticated actors get bounced to.
	LoginPath = "/auth/login"
)

// Auth returns a middleware that requires a logged-in user. Unauthenticated
// requests are redirected to the login page, never shown an error.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, err := resolveUser(db, extractToken(c))
		if err != nil {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		setUser(c, user, claims)
		c.Next()
	}
}

// OptionalAuth sets the current user if a valid token is present, but does
// not block the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, claims, err := resolveUser(db, extractToken(c)); err == nil {
			setUser(c, user, claims)
		}
		c.Next()
	}
}

func resolveUser(db *gorm.DB, rawToken string) (*models.UserModel, *jwtpkg.Claims, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, nil, errors.New("token is required")
	}

	claims, err := jwtpkg.Parse(token)
	if err != nil {
		return nil, nil, err
	}
	active, err := sessionpkg.IsActive(db, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if !active {
		return nil, nil, errors.New("session expired or revoked")
	}

	var user models.UserModel
	if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, nil, err
	}
	return &user, claims, nil
}

func setUser(c *gin.Context, user *models.UserModel, claims *jwtpkg.Claims) {
	c.Set(ContextKeyUser, user)
	c.Set(ContextKeyUserID, user.ID)
	if claims.SessionID != "" {
		c.Set(ContextKeySID, claims.SessionID)
	}
}

// CurrentUser extracts the authenticated user from context, nil for guests.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, _ := c.Get(ContextKeyUser)
	user, _ := v.(*models.UserModel)
	return user
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentSessionID extracts the authenticated session ID from context.
func CurrentSessionID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated reports whether the request carries a valid login.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return strings.TrimSpace(auth)
}
