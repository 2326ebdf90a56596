package profiles

import (
	"errors"
	"strings"

	"github.com/blogicum/core/internal/models"
	"gorm.io/gorm"
)

var errUsernameTaken = errors.New("username already taken")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// GetByUsername resolves a profile page owner; (nil, nil) when unknown.
func (s *Service) GetByUsername(username string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// ProfileForm carries the self-edit fields.
type ProfileForm struct {
	Username  string `form:"username"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
}

// Validate trims the fields and checks the username.
func (f *ProfileForm) Validate() map[string]string {
	errs := map[string]string{}

	f.Username = strings.TrimSpace(f.Username)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)

	if f.Username == "" {
		errs["username"] = "Обязательное поле."
	}
	if f.Email != "" && !strings.Contains(f.Email, "@") {
		errs["email"] = "Введите корректный адрес почты."
	}
	return errs
}

// UpdateProfile edits the current user's own profile fields. The target is
// always the authenticated user, never resolved from the URL.
func (s *Service) UpdateProfile(user *models.UserModel, f *ProfileForm) error {
	if f.Username != user.Username {
		var count int64
		s.db.Model(&models.UserModel{}).Where("username = ? AND id <> ?", f.Username, user.ID).Count(&count)
		if count > 0 {
			return errUsernameTaken
		}
	}

	return s.db.Model(user).Updates(map[string]interface{}{
		"username":   f.Username,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"email":      f.Email,
	}).Error
}
