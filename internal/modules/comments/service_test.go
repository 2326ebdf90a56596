package comments

import (
	"testing"
	"time"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPost(t *testing.T, db *gorm.DB, authorID string) *models.PostModel {
	t.Helper()
	cat := testutil.CreateCategory(t, db, "travel", true)
	return testutil.CreatePost(t, db, &models.PostModel{
		PublishBase: models.PublishBase{IsPublished: true},
		Title:       "Запись",
		Text:        "Текст.",
		PubDate:     time.Now().Add(-time.Hour),
		AuthorID:    authorID,
		CategoryID:  &cat.ID,
	})
}

func TestListByPostOrder(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db)
	author := testutil.CreateUser(t, db, "author")
	post := seedPost(t, db, author.ID)

	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	second := testutil.CreateComment(t, db, post.ID, author.ID, "второй", base.Add(time.Minute))
	first := testutil.CreateComment(t, db, post.ID, author.ID, "первый", base)

	list, err := svc.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	require.NotNil(t, list[0].Author)
	assert.Equal(t, "author", list[0].Author.Username)
}

func TestCreateTrimsText(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db)
	author := testutil.CreateUser(t, db, "author")
	post := seedPost(t, db, author.ID)

	comment, err := svc.Create(post.ID, author.ID, "  привет  ")
	require.NoError(t, err)
	assert.Equal(t, "привет", comment.Text)
}

func TestUpdateAndDelete(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db)
	author := testutil.CreateUser(t, db, "author")
	post := seedPost(t, db, author.ID)

	comment, err := svc.Create(post.ID, author.ID, "было")
	require.NoError(t, err)

	require.NoError(t, svc.Update(comment, " стало "))
	got, err := svc.GetByID(comment.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "стало", got.Text)

	require.NoError(t, svc.Delete(comment.ID))
	got, err = svc.GetByID(comment.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetByIDUnknown(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewService(db)

	got, err := svc.GetByID("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}
