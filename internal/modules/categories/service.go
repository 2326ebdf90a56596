package categories

import (
	"errors"

	"github.com/blogicum/core/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// GetPublishedBySlug resolves a category for its listing page. Unknown and
// unpublished slugs both come back (nil, nil); the page is a 404 either way.
func (s *Service) GetPublishedBySlug(slug string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// Delete removes a category, nulling the reference on its posts. The posts
// themselves survive (and drop out of public listings until recategorized).
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PostModel{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CategoryModel{}, "id = ?", id).Error
	})
}
