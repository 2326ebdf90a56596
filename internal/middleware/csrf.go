package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeyCSRF = "csrf_token"

	// CSRFCookie holds the double-submit token.
	CSRFCookie = "blogicum_csrf"

	// CSRFField is the hidden form field carrying the token back.
	CSRFField = "csrf_token"

	csrfTokenBytes = 32
	csrfCookieAge  = 12 * 3600
)

// CSRF implements double-submit cookie protection for form posts. Safe
// methods ensure a token cookie exists; unsafe methods must echo it in the
// csrf_token form field. Failures are rendered by onFailure (a 403 page).
func CSRF(secure bool, onFailure func(c *gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookie)
		if err != nil || token == "" {
			token = newCSRFToken()
			c.SetCookie(CSRFCookie, token, csrfCookieAge, "/", "", secure, true)
		}
		c.Set(ContextKeyCSRF, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.PostForm(CSRFField)
		if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			onFailure(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CSRFToken extracts the current request's token for form rendering.
func CSRFToken(c *gin.Context) string {
	v, _ := c.Get(ContextKeyCSRF)
	token, _ := v.(string)
	return token
}

func newCSRFToken() string {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failure is unrecoverable
	}
	return hex.EncodeToString(buf)
}
