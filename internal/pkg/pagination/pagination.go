package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PageSize is the fixed number of posts per listing page.
const PageSize = 10

// Query holds the parsed page number.
type Query struct {
	Page int
}

// Pagination is the page metadata handed to the view layer.
type Pagination struct {
	Total       int64
	CurrentPage int
	TotalPage   int
	HasPrevPage bool
	HasNextPage bool
}

// PrevPage returns the previous page number for template links.
func (p Pagination) PrevPage() int { return p.CurrentPage - 1 }

// NextPage returns the next page number for template links.
func (p Pagination) NextPage() int { return p.CurrentPage + 1 }

// FromContext extracts the page number from the request. Anything unparsable
// or below 1 falls back to page 1.
func FromContext(c *gin.Context) Query {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return Query{Page: page}
}

// Paginate applies limit/offset to a GORM query and returns page metadata.
// An out-of-range page yields an empty result, never an error.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (Pagination, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (q.Page - 1) * PageSize
	if err := db.Offset(offset).Limit(PageSize).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPage := int((total + PageSize - 1) / PageSize)

	return Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		HasPrevPage: q.Page > 1,
		HasNextPage: q.Page < totalPage,
	}, nil
}
