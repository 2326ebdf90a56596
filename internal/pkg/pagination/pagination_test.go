package pagination

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, 1, FromContext(ctxWithQuery("")).Page)
	assert.Equal(t, 3, FromContext(ctxWithQuery("page=3")).Page)
	assert.Equal(t, 1, FromContext(ctxWithQuery("page=0")).Page)
	assert.Equal(t, 1, FromContext(ctxWithQuery("page=-2")).Page)
	assert.Equal(t, 1, FromContext(ctxWithQuery("page=abc")).Page)
}

func TestPaginate(t *testing.T) {
	db := testutil.OpenDB(t)
	for i := 0; i < 25; i++ {
		testutil.CreateLocation(t, db, fmt.Sprintf("Город %02d", i))
	}

	q := db.Model(&models.LocationModel{}).Order("name ASC")

	var page []models.LocationModel
	pag, err := Paginate(q, Query{Page: 1}, &page)
	require.NoError(t, err)
	assert.Len(t, page, PageSize)
	assert.EqualValues(t, 25, pag.Total)
	assert.Equal(t, 3, pag.TotalPage)
	assert.False(t, pag.HasPrevPage)
	assert.True(t, pag.HasNextPage)
	assert.Equal(t, 2, pag.NextPage())

	page = nil
	pag, err = Paginate(db.Model(&models.LocationModel{}).Order("name ASC"), Query{Page: 3}, &page)
	require.NoError(t, err)
	assert.Len(t, page, 5)
	assert.True(t, pag.HasPrevPage)
	assert.False(t, pag.HasNextPage)
	assert.Equal(t, 2, pag.PrevPage())
}

func TestPaginateOutOfRange(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.CreateLocation(t, db, "Одинокий город")

	var page []models.LocationModel
	pag, err := Paginate(db.Model(&models.LocationModel{}), Query{Page: 42}, &page)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.EqualValues(t, 1, pag.Total)
	assert.Equal(t, 1, pag.TotalPage)
}

func TestPaginateEmptyTable(t *testing.T) {
	db := testutil.OpenDB(t)

	var page []models.LocationModel
	pag, err := Paginate(db.Model(&models.LocationModel{}), Query{Page: 1}, &page)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Zero(t, pag.Total)
	assert.Zero(t, pag.TotalPage)
	assert.False(t, pag.HasNextPage)
}
