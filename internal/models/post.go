package models

import "time"

// TitleMaxLength caps the post title form field.
const TitleMaxLength = 256

// PostModel is a blog post. A post becomes publicly visible only when it is
// published, its pub date has passed and its category exists and is published.
// Future pub dates make delayed publications.
type PostModel struct {
	PublishBase
	Title      string         `json:"title"       gorm:"type:varchar(256);not null"`
	Text       string         `json:"text"        gorm:"type:longtext"`
	PubDate    time.Time      `json:"pub_date"    gorm:"index;not null"`
	AuthorID   string         `json:"author_id"   gorm:"index;not null"`
	Author     *UserModel     `json:"author,omitempty"   gorm:"foreignKey:AuthorID"`
	LocationID *string        `json:"location_id" gorm:"index"`
	Location   *LocationModel `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	CategoryID *string        `json:"category_id" gorm:"index"`
	Category   *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Image      string         `json:"image"`

	// Derived at query time via a correlated subquery, never stored.
	CommentCount int64 `json:"comment_count" gorm:"->;-:migration"`

	Comments []CommentModel `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (PostModel) TableName() string { return "posts" }
