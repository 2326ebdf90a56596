package locations

import (
	"errors"

	"github.com/blogicum/core/internal/models"
	"gorm.io/gorm"
)

// Service manages locations. They have no public pages of their own; the
// posts module renders them inside cards and forms.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// GetByID fetches a location; (nil, nil) when missing.
func (s *Service) GetByID(id string) (*models.LocationModel, error) {
	var loc models.LocationModel
	if err := s.db.First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

// List returns all locations for the post form select, stable order.
func (s *Service) List() ([]models.LocationModel, error) {
	var list []models.LocationModel
	err := s.db.Order("created_at ASC").Find(&list).Error
	return list, err
}

// Delete removes a location, nulling the reference on its posts. The posts
// survive and fall back to the empty-value display.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PostModel{}).Where("location_id = ?", id).
			Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.LocationModel{}, "id = ?", id).Error
	})
}
