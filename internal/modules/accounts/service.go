package accounts

import (
	"errors"
	"strings"
	"time"

	"github.com/blogicum/core/internal/models"
	sessionpkg "github.com/blogicum/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	errInvalidCredentials = errors.New("invalid username or password")
	errUsernameTaken      = errors.New("username already taken")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// RegisterForm carries the signup fields.
type RegisterForm struct {
	Username  string `form:"username"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
	Password  string `form:"password"`
	Password2 string `form:"password2"`
}

// Validate trims and checks the signup form.
func (f *RegisterForm) Validate() map[string]string {
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
	if len(f.Password) < 8 {
		errs["password"] = "Пароль должен быть не короче 8 символов."
	} else if f.Password != f.Password2 {
		errs["password2"] = "Пароли не совпадают."
	}
	return errs
}

// Register creates a new user with a bcrypt password hash.
func (s *Service) Register(f *RegisterForm) (*models.UserModel, error) {
	var count int64
	s.db.Model(&models.UserModel{}).Where("username = ?", f.Username).Count(&count)
	if count > 0 {
		return nil, errUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{
		Username:  f.Username,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  string(hash),
	}
	return &u, s.db.Create(&u).Error
}

// Login verifies credentials and issues a session-bound token.
func (s *Service) Login(username, password, ip, ua string) (string, *models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Equalize timing between unknown user and wrong password.
			time.Sleep(200 * time.Millisecond)
			return "", nil, errInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, errInvalidCredentials
	}

	token, _, err := sessionpkg.Issue(s.db, u.ID, ip, ua, sessionpkg.DefaultTTL)
	return token, &u, err
}

// Logout revokes the active session.
func (s *Service) Logout(userID, sessionID string) error {
	err := sessionpkg.Revoke(s.db, userID, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
