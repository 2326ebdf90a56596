package profiles

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/posts"
	"github.com/blogicum/core/internal/pkg/render"
	sessionpkg "github.com/blogicum/core/internal/pkg/session"
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

	h := NewHandler(NewService(db), posts.NewService(db), renderer)
	h.RegisterRoutes(r.Group("/"), middleware.Auth(db))
	return r
}

func loginCookie(t *testing.T, db *gorm.DB, userID string) *http.Cookie {
	t.Helper()
	token, _, err := sessionpkg.Issue(db, userID, "127.0.0.1", "test", time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.TokenCookie, Value: token}
}

func get(r *gin.Engine, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// The profile page shows every post of the author, hidden ones included,
// to any anonymous visitor.
func TestProfileShowsFullHistory(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)
	author := testutil.CreateUser(t, db, "author")
	cat := testutil.CreateCategory(t, db, "travel", true)

	testutil.CreatePost(t, db, &models.PostModel{
		PublishBase: models.PublishBase{IsPublished: true},
		Title:       "Открытая запись",
		Text:        "Текст.",
		PubDate:     time.Now().Add(-time.Hour),
		AuthorID:    author.ID,
		CategoryID:  &cat.ID,
	})
	testutil.CreatePost(t, db, &models.PostModel{
		Title:      "Скрытая запись",
		Text:       "Текст.",
		PubDate:    time.Now().Add(-time.Hour),
		AuthorID:   author.ID,
		CategoryID: &cat.ID,
	})

	w := get(r, "/profile/author")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Открытая запись")
	assert.Contains(t, w.Body.String(), "Скрытая запись")
}

func TestProfileUnknownUser(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)

	w := get(r, "/profile/nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileEditRequiresLogin(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)

	w := get(r, "/profile/edit")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}

// /profile/edit always edits the session's user, whatever the form claims.
func TestProfileEditTargetsCurrentUser(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)
	me := testutil.CreateUser(t, db, "me")
	victim := testutil.CreateUser(t, db, "victim")

	form := url.Values{
		"username":   {"me-renamed"},
		"first_name": {"Имя"},
		"email":      {"me@example.com"},
	}
	req := httptest.NewRequest(http.MethodPost, "/profile/edit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(loginCookie(t, db, me.ID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile/me-renamed", w.Header().Get("Location"))

	var gotMe, gotVictim models.UserModel
	require.NoError(t, db.First(&gotMe, "id = ?", me.ID).Error)
	require.NoError(t, db.First(&gotVictim, "id = ?", victim.ID).Error)
	assert.Equal(t, "me-renamed", gotMe.Username)
	assert.Equal(t, "victim", gotVictim.Username)
}
