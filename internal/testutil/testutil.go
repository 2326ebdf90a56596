// Package testutil provides an isolated in-memory database and fixtures for
// package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/blogicum/core/internal/database"
	"github.com/blogicum/core/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB opens a fresh in-memory database with the full schema migrated.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.UserModel {
	t.Helper()
	u := &models.UserModel{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateCategory inserts a category. The published flag is forced after the
// insert because the column default would otherwise win over a false zero
// value.
func CreateCategory(t *testing.T, db *gorm.DB, slug string, published bool) *models.CategoryModel {
	t.Helper()
	cat := &models.CategoryModel{
		Title:       "Категория " + slug,
		Description: "Описание",
		Slug:        slug,
	}
	require.NoError(t, db.Create(cat).Error)
	if !published {
		require.NoError(t, db.Model(cat).Update("is_published", false).Error)
		cat.IsPublished = false
	}
	return cat
}

// CreateLocation inserts a location.
func CreateLocation(t *testing.T, db *gorm.DB, name string) *models.LocationModel {
	t.Helper()
	loc := &models.LocationModel{Name: name}
	require.NoError(t, db.Create(loc).Error)
	return loc
}

// CreatePost inserts a post, honoring the IsPublished flag as given.
func CreatePost(t *testing.T, db *gorm.DB, post *models.PostModel) *models.PostModel {
	t.Helper()
	published := post.IsPublished
	require.NoError(t, db.Create(post).Error)
	if !published {
		require.NoError(t, db.Model(post).Update("is_published", false).Error)
		post.IsPublished = false
	}
	return post
}

// CreateComment inserts a comment with an explicit creation time so ordering
// tests stay deterministic.
func CreateComment(t *testing.T, db *gorm.DB, postID, authorID, text string, createdAt time.Time) *models.CommentModel {
	t.Helper()
	comment := &models.CommentModel{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}
	comment.CreatedAt = createdAt
	require.NoError(t, db.Create(comment).Error)
	return comment
}
