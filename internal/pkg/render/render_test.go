package render

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewParsesAllPages(t *testing.T) {
	r, err := New(zap.NewNop())
	require.NoError(t, err)

	for _, page := range []string{
		"index.html", "detail.html", "category.html", "profile.html",
		"post_form.html", "comment_form.html", "user_form.html",
		"login.html", "registration.html", "about.html", "rules.html",
		"404.html", "403.html",
	} {
		assert.Contains(t, r.pages, page)
	}
}

func serve(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.GET("/x", handler)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestNotFoundPage(t *testing.T) {
	r, err := New(zap.NewNop())
	require.NoError(t, err)

	w := serve(t, r.NotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestForbiddenPage(t *testing.T) {
	r, err := New(zap.NewNop())
	require.NoError(t, err)

	w := serve(t, r.Forbidden)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "403")
}

func TestServerErrorBypassesTemplates(t *testing.T) {
	r, err := New(zap.NewNop())
	require.NoError(t, err)

	w := serve(t, func(c *gin.Context) {
		r.ServerError(c, assert.AnError)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "500")
}

func TestUnknownPageIsServerError(t *testing.T) {
	r, err := New(zap.NewNop())
	require.NoError(t, err)

	w := serve(t, func(c *gin.Context) {
		r.HTML(c, http.StatusOK, "nope.html", nil)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDisplayFunc(t *testing.T) {
	display := funcs["display"].(func(string) string)
	assert.Equal(t, "Не задано", display(""))
	assert.Equal(t, "Москва", display("Москва"))
}

func TestMarkdown(t *testing.T) {
	out := string(Markdown("**жирный** текст"))
	assert.Contains(t, out, "<strong>жирный</strong>")

	// raw HTML from authors stays inert
	out = string(Markdown("<script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
}
