package models

import "time"

// UserModel represents a registered author.
type UserModel struct {
	Base
	Username  string `json:"username"   gorm:"uniqueIndex;not null"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"-"          gorm:"not null"`

	Posts    []PostModel    `json:"posts,omitempty"    gorm:"foreignKey:AuthorID"`
	Comments []CommentModel `json:"comments,omitempty" gorm:"foreignKey:AuthorID"`
}

func (UserModel) TableName() string { return "users" }

// FullName joins first and last name for display.
func (u UserModel) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return ""
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// UserSession is a revocable login session backing a JWT sid claim.
type UserSession struct {
	Base
	UserID    string     `json:"-"          gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:varchar(512)"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at"`
	UpdatedAt time.Time  `json:"last_seen"`
}

func (UserSession) TableName() string { return "user_sessions" }
