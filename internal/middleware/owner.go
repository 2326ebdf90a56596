package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrNotFound is returned by an OwnerFunc when the target entity is missing.
var ErrNotFound = errors.New("entity not found")

// OwnerFunc resolves the entity a mutating route targets, returning the
// owner's user id and the URL non-owners are bounced to.
type OwnerFunc func(c *gin.Context) (ownerID string, fallbackURL string, err error)

// OwnerOnly guards a mutating route: only the entity's author may proceed.
// A non-owner is silently redirected to the fallback URL (usually the post
// detail page), never shown an error. Must run after Auth.
func OwnerOnly(extract OwnerFunc, onError func(c *gin.Context, err error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, fallbackURL, err := extract(c)
		if err != nil {
			onError(c, err)
			c.Abort()
			return
		}
		if !CanModify(CurrentUserID(c), ownerID) {
			c.Redirect(http.StatusSeeOther, fallbackURL)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CanModify reports whether the acting user owns the entity.
func CanModify(userID, ownerID string) bool {
	return userID != "" && userID == ownerID
}
