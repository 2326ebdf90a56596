package posts

import (
	"fmt"
	"strings"
	"time"

	"github.com/blogicum/core/internal/models"
	"gorm.io/gorm"
)

// pubDateLayouts accepted from the form, datetime-local first.
var pubDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// PostForm carries parsed and validated post form input.
type PostForm struct {
	Title    string `form:"title"`
	Text     string `form:"text"`
	PubDate  string `form:"pub_date"`
	Category string `form:"category"`
	Location string `form:"location"`

	// normalized values, set by Validate
	title      string
	text       string
	pubDate    time.Time
	categoryID *string
	locationID *string
	imageURL   string
}

// Validate checks the form and resolves category/location references.
// Returns a field→message map; empty means the form is valid.
func (f *PostForm) Validate(db *gorm.DB) map[string]string {
	errs := map[string]string{}

	f.title = strings.TrimSpace(f.Title)
	if f.title == "" {
		errs["title"] = "Обязательное поле."
	} else if len([]rune(f.title)) > models.TitleMaxLength {
		errs["title"] = fmt.Sprintf("Не больше %d символов.", models.TitleMaxLength)
	}

	f.text = strings.TrimSpace(f.Text)
	if f.text == "" {
		errs["text"] = "Обязательное поле."
	}

	if strings.TrimSpace(f.PubDate) == "" {
		errs["pub_date"] = "Обязательное поле."
	} else if t, ok := parsePubDate(f.PubDate); ok {
		f.pubDate = t
	} else {
		errs["pub_date"] = "Неверный формат даты."
	}

	category := strings.TrimSpace(f.Category)
	if category == "" {
		errs["category"] = "Обязательное поле."
	} else {
		var count int64
		db.Model(&models.CategoryModel{}).Where("id = ?", category).Count(&count)
		if count == 0 {
			errs["category"] = "Категория не найдена."
		} else {
			f.categoryID = &category
		}
	}

	if location := strings.TrimSpace(f.Location); location != "" {
		var count int64
		db.Model(&models.LocationModel{}).Where("id = ?", location).Count(&count)
		if count == 0 {
			errs["location"] = "Местоположение не найдено."
		} else {
			f.locationID = &location
		}
	}

	return errs
}

// SetImageURL attaches the stored upload, if any.
func (f *PostForm) SetImageURL(url string) { f.imageURL = url }

func parsePubDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormValues re-populates the form fields for re-rendering after a
// validation failure or when editing an existing post.
func FormValues(p *models.PostModel) map[string]string {
	v := map[string]string{
		"title":    p.Title,
		"text":     p.Text,
		"pub_date": p.PubDate.Format("2006-01-02T15:04"),
	}
	if p.CategoryID != nil {
		v["category"] = *p.CategoryID
	}
	if p.LocationID != nil {
		v["location"] = *p.LocationID
	}
	return v
}
