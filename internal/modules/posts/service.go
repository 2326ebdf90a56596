package posts

import (
	"errors"
	"time"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/pkg/pagination"
	"gorm.io/gorm"
)

// commentCountSelect annotates the live comment total; derived at query time,
// never stored.
const commentCountSelect = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// postOrder is the deterministic listing order: newest pub date first, id as
// the pagination tiebreak.
const postOrder = "posts.pub_date DESC, posts.id DESC"

// Service is the query layer for posts: visibility filtering, ordering,
// pagination and CRUD.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// visible narrows posts to the publicly visible set: published, pub date
// passed, category present and itself published. The inner join drops
// category-less posts.
func (s *Service) visible(now time.Time) *gorm.DB {
	return s.db.Model(&models.PostModel{}).
		Joins("JOIN categories ON categories.id = posts.category_id").
		Where("posts.is_published = ? AND posts.pub_date <= ? AND categories.is_published = ?", true, now, true)
}

// ListPublic returns one page of publicly visible posts with relations and
// comment counts, newest first.
func (s *Service) ListPublic(q pagination.Query) ([]models.PostModel, pagination.Pagination, error) {
	tx := s.visible(s.now()).
		Select(commentCountSelect).
		Preload("Author").Preload("Location").Preload("Category").
		Order(postOrder)

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// ListByCategory returns one page of visible posts in the category slug.
// Category existence/publication is the caller's concern (categories module).
func (s *Service) ListByCategory(slug string, q pagination.Query) ([]models.PostModel, pagination.Pagination, error) {
	tx := s.visible(s.now()).
		Where("categories.slug = ?", slug).
		Select(commentCountSelect).
		Preload("Author").Preload("Location").Preload("Category").
		Order(postOrder)

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// ListByAuthor returns one page of ALL posts by the author, unpublished and
// future-dated included. Profile pages show the full history to any visitor.
func (s *Service) ListByAuthor(authorID string, q pagination.Query) ([]models.PostModel, pagination.Pagination, error) {
	tx := s.db.Model(&models.PostModel{}).
		Where("posts.author_id = ?", authorID).
		Select(commentCountSelect).
		Preload("Author").Preload("Location").Preload("Category").
		Order(postOrder)

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// GetDetail fetches a post by id for the given viewer. A post outside the
// public visibility set is only returned to its own author; (nil, nil)
// otherwise.
func (s *Service) GetDetail(id, viewerID string) (*models.PostModel, error) {
	post, err := s.getByID(id)
	if err != nil || post == nil {
		return nil, err
	}
	if !s.isVisible(post) && post.AuthorID != viewerID {
		return nil, nil
	}
	return post, nil
}

// GetPublic fetches a post by id through the public visibility filter with
// no author bypass. Commenting targets resolve through here.
func (s *Service) GetPublic(id string) (*models.PostModel, error) {
	post, err := s.getByID(id)
	if err != nil || post == nil {
		return nil, err
	}
	if !s.isVisible(post) {
		return nil, nil
	}
	return post, nil
}

// GetOwned fetches a post by id regardless of visibility, for owner-guarded
// edit/delete flows.
func (s *Service) GetOwned(id string) (*models.PostModel, error) {
	return s.getByID(id)
}

// AuthorID resolves just the owning user id for the owner middleware.
func (s *Service) AuthorID(id string) (string, error) {
	var row struct{ AuthorID string }
	err := s.db.Model(&models.PostModel{}).Select("author_id").
		Where("id = ?", id).Scan(&row).Error
	if err != nil {
		return "", err
	}
	if row.AuthorID == "" {
		return "", middleware.ErrNotFound
	}
	return row.AuthorID, nil
}

func (s *Service) getByID(id string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.Model(&models.PostModel{}).
		Select(commentCountSelect).
		Preload("Author").Preload("Location").Preload("Category").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *Service) isVisible(p *models.PostModel) bool {
	return p.IsPublished &&
		!p.PubDate.After(s.now()) &&
		p.CategoryID != nil &&
		p.Category != nil && p.Category.IsPublished
}

// Create inserts a new post owned by authorID.
func (s *Service) Create(authorID string, f *PostForm) (*models.PostModel, error) {
	post := models.PostModel{
		Title:      f.title,
		Text:       f.text,
		PubDate:    f.pubDate,
		AuthorID:   authorID,
		CategoryID: f.categoryID,
		LocationID: f.locationID,
		Image:      f.imageURL,
	}
	post.IsPublished = true
	return &post, s.db.Create(&post).Error
}

// Update patches the post's form-editable fields. Author never changes.
func (s *Service) Update(post *models.PostModel, f *PostForm) error {
	updates := map[string]interface{}{
		"title":       f.title,
		"text":        f.text,
		"pub_date":    f.pubDate,
		"category_id": f.categoryID,
		"location_id": f.locationID,
	}
	if f.imageURL != "" {
		updates["image"] = f.imageURL
	}
	return s.db.Model(post).Updates(updates).Error
}

// Delete removes the post and cascades to its comments.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CommentModel{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PostModel{}, "id = ?", id).Error
	})
}
