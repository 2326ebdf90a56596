package accounts

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/pkg/render"
	"github.com/blogicum/core/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := render.New(zap.NewNop())
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.OptionalAuth(db))

	h := NewHandler(NewService(db), renderer, false)
	h.RegisterRoutes(r.Group("/"), middleware.Auth(db))
	return r
}

func postForm(r *gin.Engine, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.TokenCookie {
			return c
		}
	}
	return nil
}

func registerDemo(t *testing.T, r *gin.Engine) {
	t.Helper()
	form := url.Values{
		"username":  {"demo"},
		"email":     {"demo@example.com"},
		"password":  {"correct horse"},
		"password2": {"correct horse"},
	}
	w := postForm(r, "/auth/registration", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}

func TestRegistrationAndLoginFlow(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)
	registerDemo(t, r)

	w := postForm(r, "/auth/login", url.Values{
		"username": {"demo"},
		"password": {"correct horse"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookie := tokenCookie(w)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginNextRedirect(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)
	registerDemo(t, r)

	w := postForm(r, "/auth/login", url.Values{
		"username": {"demo"},
		"password": {"correct horse"},
		"next":     {"/posts/create"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/create", w.Header().Get("Location"))

	// absolute URLs are not open-redirect targets
	w = postForm(r, "/auth/login", url.Values{
		"username": {"demo"},
		"password": {"correct horse"},
		"next":     {"https://evil.example.com/"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLoginBadCredentialsRerenders(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)
	registerDemo(t, r)

	w := postForm(r, "/auth/login", url.Values{
		"username": {"demo"},
		"password": {"wrong password"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Неверное имя пользователя или пароль.")
	assert.Nil(t, tokenCookie(w))
}

func TestRegistrationDuplicateUsername(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)
	registerDemo(t, r)

	form := url.Values{
		"username":  {"demo"},
		"password":  {"correct horse"},
		"password2": {"correct horse"},
	}
	w := postForm(r, "/auth/registration", form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Имя пользователя уже занято.")
}

func TestLogout(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)
	registerDemo(t, r)

	w := postForm(r, "/auth/login", url.Values{
		"username": {"demo"},
		"password": {"correct horse"},
	})
	cookie := tokenCookie(w)
	require.NotNil(t, cookie)

	w = postForm(r, "/auth/logout", url.Values{}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cleared := tokenCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// the revoked session no longer authenticates
	w = postForm(r, "/auth/logout", url.Values{}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}
