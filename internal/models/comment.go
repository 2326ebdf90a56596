package models

// CommentModel is a reader comment on a post. Deleting the post deletes its
// comments; deleting the author does not.
type CommentModel struct {
	Base
	Text     string     `json:"text"      gorm:"type:text;not null"`
	AuthorID string     `json:"author_id" gorm:"index;not null"`
	Author   *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	PostID   string     `json:"post_id"   gorm:"index;not null"`
	Post     *PostModel `json:"post,omitempty"   gorm:"foreignKey:PostID"`
}

func (CommentModel) TableName() string { return "comments" }
