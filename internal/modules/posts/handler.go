package posts

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/blogicum/core/internal/middleware"
	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/modules/locations"
	"github.com/blogicum/core/internal/pkg/mediastore"
	"github.com/blogicum/core/internal/pkg/pagination"
	"github.com/blogicum/core/internal/pkg/render"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxImageSize = 10 << 20 // 10 MiB

// CommentLister supplies a post's comments for the detail page.
type CommentLister interface {
	ListByPost(postID string) ([]models.CommentModel, error)
}

// Handler serves the home listing and the post CRUD pages.
type Handler struct {
	svc       *Service
	comments  CommentLister
	locations *locations.Service
	media     mediastore.Store
	renderer  *render.Renderer
}

func NewHandler(svc *Service, comments CommentLister, locs *locations.Service, media mediastore.Store, renderer *render.Renderer) *Handler {
	return &Handler{svc: svc, comments: comments, locations: locs, media: media, renderer: renderer}
}

// RegisterRoutes mounts the home page and post routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	r.GET("/", h.index)

	g := r.Group("/posts")
	g.GET("/:postId", h.detail)

	authed := g.Group("", authMW)
	authed.GET("/create", h.createForm)
	authed.POST("/create", h.create)

	owned := authed.Group("", middleware.OwnerOnly(h.postOwner, h.onOwnerError))
	owned.GET("/:postId/edit", h.editForm)
	owned.POST("/:postId/edit", h.edit)
	owned.GET("/:postId/delete", h.deleteForm)
	owned.POST("/:postId/delete", h.delete)
}

// index GET /
func (h *Handler) index(c *gin.Context) {
	list, pag, err := h.svc.ListPublic(pagination.FromContext(c))
	if err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	h.renderer.HTML(c, http.StatusOK, "index.html", gin.H{
		"Posts":      list,
		"Pagination": pag,
	})
}

// detail GET /posts/:postId
func (h *Handler) detail(c *gin.Context) {
	post, err := h.svc.GetDetail(c.Param("postId"), middleware.CurrentUserID(c))
	if err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	if post == nil {
		h.renderer.NotFound(c)
		return
	}

	comments, err := h.comments.ListByPost(post.ID)
	if err != nil {
		h.renderer.ServerError(c, err)
		return
	}

	h.renderer.HTML(c, http.StatusOK, "detail.html", gin.H{
		"Post":     post,
		"Comments": comments,
	})
}

// createForm GET /posts/create  [auth]
func (h *Handler) createForm(c *gin.Context) {
	h.renderForm(c, "/posts/create", map[string]string{}, nil, false)
}

// create POST /posts/create  [auth]
func (h *Handler) create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var f PostForm
	_ = c.ShouldBind(&f)
	formErrs := f.Validate(h.svc.db)

	imageURL, err := h.saveImage(c)
	if err != nil {
		formErrs["image"] = err.Error()
	}
	f.SetImageURL(imageURL)

	if len(formErrs) > 0 {
		h.renderForm(c, "/posts/create", formValuesFromForm(&f), formErrs, false)
		return
	}

	if _, err := h.svc.Create(user.ID, &f); err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}

// editForm GET /posts/:postId/edit  [auth+owner]
func (h *Handler) editForm(c *gin.Context) {
	post, ok := h.loadOwned(c)
	if !ok {
		return
	}
	h.renderForm(c, "/posts/"+post.ID+"/edit", FormValues(post), nil, false)
}

// edit POST /posts/:postId/edit  [auth+owner]
func (h *Handler) edit(c *gin.Context) {
	post, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var f PostForm
	_ = c.ShouldBind(&f)
	formErrs := f.Validate(h.svc.db)

	imageURL, err := h.saveImage(c)
	if err != nil {
		formErrs["image"] = err.Error()
	}
	f.SetImageURL(imageURL)

	if len(formErrs) > 0 {
		h.renderForm(c, "/posts/"+post.ID+"/edit", formValuesFromForm(&f), formErrs, false)
		return
	}

	if err := h.svc.Update(post, &f); err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+post.ID)
}

// deleteForm GET /posts/:postId/delete  [auth+owner]
// Shows the post's current data as a pre-filled confirmation form.
func (h *Handler) deleteForm(c *gin.Context) {
	post, ok := h.loadOwned(c)
	if !ok {
		return
	}
	h.renderForm(c, "/posts/"+post.ID+"/delete", FormValues(post), nil, true)
}

// delete POST /posts/:postId/delete  [auth+owner]
func (h *Handler) delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Param("postId")); err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}

func (h *Handler) loadOwned(c *gin.Context) (*models.PostModel, bool) {
	post, err := h.svc.GetOwned(c.Param("postId"))
	if err != nil {
		h.renderer.ServerError(c, err)
		return nil, false
	}
	if post == nil {
		h.renderer.NotFound(c)
		return nil, false
	}
	return post, true
}

func (h *Handler) renderForm(c *gin.Context, action string, values map[string]string, formErrs map[string]string, isDelete bool) {
	var categories []models.CategoryModel
	if err := h.svc.db.Order("created_at ASC").Find(&categories).Error; err != nil {
		h.renderer.ServerError(c, err)
		return
	}
	locs, err := h.locations.List()
	if err != nil {
		h.renderer.ServerError(c, err)
		return
	}

	h.renderer.HTML(c, http.StatusOK, "post_form.html", gin.H{
		"Action":     action,
		"Values":     values,
		"Errors":     formErrs,
		"Categories": categories,
		"Locations":  locs,
		"IsDelete":   isDelete,
	})
}

// saveImage stores an optional multipart image upload and returns its URL.
// No file attached is not an error.
func (h *Handler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	if file.Size > maxImageSize {
		return "", errors.New("Файл слишком большой.")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.New("Можно загрузить только изображение.")
	}

	data, err := readUpload(file)
	if err != nil {
		return "", errors.New("Не удалось прочитать файл.")
	}

	key := fmt.Sprintf("post_images/%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(file.Filename)))
	url, err := h.media.Save(c.Request.Context(), key, data, contentType)
	if err != nil {
		return "", errors.New("Не удалось сохранить файл.")
	}
	return url, nil
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImageSize+1))
}

func (h *Handler) postOwner(c *gin.Context) (string, string, error) {
	id := c.Param("postId")
	authorID, err := h.svc.AuthorID(id)
	if err != nil {
		return "", "", err
	}
	return authorID, "/posts/" + id, nil
}

func (h *Handler) onOwnerError(c *gin.Context, err error) {
	if errors.Is(err, middleware.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		h.renderer.NotFound(c)
		return
	}
	h.renderer.ServerError(c, err)
}

func formValuesFromForm(f *PostForm) map[string]string {
	return map[string]string{
		"title":    f.Title,
		"text":     f.Text,
		"pub_date": f.PubDate,
		"category": f.Category,
		"location": f.Location,
	}
}
