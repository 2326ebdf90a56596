package models

// CategoryModel classifies posts. Slug is the URL-safe unique identifier.
type CategoryModel struct {
	PublishBase
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Slug        string `json:"slug"        gorm:"uniqueIndex;not null"`

	Posts []PostModel `json:"posts,omitempty" gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }
