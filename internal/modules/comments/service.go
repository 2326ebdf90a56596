package comments

import (
	"errors"
	"strings"

	"github.com/blogicum/core/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// ListByPost returns the post's comments oldest first, authors loaded.
func (s *Service) ListByPost(postID string) ([]models.CommentModel, error) {
	var list []models.CommentModel
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}

// GetByID fetches a single comment; (nil, nil) when missing.
func (s *Service) GetByID(id string) (*models.CommentModel, error) {
	var comment models.CommentModel
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Create attaches a comment to the post. The caller must have resolved the
// post through the public visibility filter.
func (s *Service) Create(postID, authorID, text string) (*models.CommentModel, error) {
	comment := models.CommentModel{
		Text:     strings.TrimSpace(text),
		AuthorID: authorID,
		PostID:   postID,
	}
	return &comment, s.db.Create(&comment).Error
}

// Update replaces the comment text.
func (s *Service) Update(comment *models.CommentModel, text string) error {
	return s.db.Model(comment).Update("text", strings.TrimSpace(text)).Error
}

// Delete removes a single comment.
func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.CommentModel{}, "id = ?", id).Error
}
