package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ownerRouter(extract OwnerFunc) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	errCalls := 0
	r := gin.New()
	r.GET("/things/:id/edit",
		OwnerOnly(extract, func(c *gin.Context, err error) {
			errCalls++
			c.String(http.StatusNotFound, "not found")
		}),
		func(c *gin.Context) { c.String(http.StatusOK, "edit form") },
	)
	return r, &errCalls
}

func TestOwnerOnly(t *testing.T) {
	extract := func(c *gin.Context) (string, string, error) {
		return "owner-1", "/things/" + c.Param("id"), nil
	}

	t.Run("owner passes", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.GET("/things/:id/edit",
			func(c *gin.Context) { c.Set(ContextKeyUserID, "owner-1") },
			OwnerOnly(extract, func(c *gin.Context, err error) { c.Status(http.StatusInternalServerError) }),
			func(c *gin.Context) { c.String(http.StatusOK, "edit form") },
		)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42/edit", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "edit form", w.Body.String())
	})

	t.Run("non-owner is redirected, not denied", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.GET("/things/:id/edit",
			func(c *gin.Context) { c.Set(ContextKeyUserID, "intruder") },
			OwnerOnly(extract, func(c *gin.Context, err error) { c.Status(http.StatusInternalServerError) }),
			func(c *gin.Context) { c.String(http.StatusOK, "edit form") },
		)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42/edit", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/things/42", w.Header().Get("Location"))
	})

	t.Run("missing entity goes to the error callback", func(t *testing.T) {
		r, errCalls := ownerRouter(func(c *gin.Context) (string, string, error) {
			return "", "", ErrNotFound
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42/edit", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 1, *errCalls)
	})

	t.Run("lookup failure goes to the error callback", func(t *testing.T) {
		r, errCalls := ownerRouter(func(c *gin.Context) (string, string, error) {
			return "", "", errors.New("db gone")
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42/edit", nil))
		assert.Equal(t, 1, *errCalls)
	})
}

func TestCanModify(t *testing.T) {
	assert.True(t, CanModify("u1", "u1"))
	assert.False(t, CanModify("u1", "u2"))
	assert.False(t, CanModify("", ""))
}
