package categories

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/posts"
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
	h := NewHandler(NewService(db), posts.NewService(db), renderer)
	h.RegisterRoutes(r.Group("/"))
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestCategoryPage(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)
	author := testutil.CreateUser(t, db, "author")
	cat := testutil.CreateCategory(t, db, "travel", true)
	other := testutil.CreateCategory(t, db, "recipes", true)

	testutil.CreatePost(t, db, &models.PostModel{
		PublishBase: models.PublishBase{IsPublished: true},
		Title:       "Про дорогу",
		Text:        "Текст.",
		PubDate:     time.Now().Add(-time.Hour),
		AuthorID:    author.ID,
		CategoryID:  &cat.ID,
	})
	testutil.CreatePost(t, db, &models.PostModel{
		PublishBase: models.PublishBase{IsPublished: true},
		Title:       "Про суп",
		Text:        "Текст.",
		PubDate:     time.Now().Add(-time.Hour),
		AuthorID:    author.ID,
		CategoryID:  &other.ID,
	})

	w := get(r, "/category/travel")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Про дорогу")
	assert.NotContains(t, w.Body.String(), "Про суп")
}

func TestCategoryUnknownOrHidden(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newTestRouter(t, db)
	testutil.CreateCategory(t, db, "drafts", false)

	assert.Equal(t, http.StatusNotFound, get(r, "/category/drafts").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/category/missing").Code)
}
