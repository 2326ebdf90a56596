package models

// LocationModel is an optional place tag on a post.
type LocationModel struct {
	PublishBase
	Name string `json:"name" gorm:"not null"`

	Posts []PostModel `json:"posts,omitempty" gorm:"foreignKey:LocationID"`
}

func (LocationModel) TableName() string { return "locations" }
