package main

import (
	"flag"
	"time"

	"github.com/blogicum/core/internal/config"
	"github.com/blogicum/core/internal/database"
	"github.com/blogicum/core/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a small demo dataset. Safe to run repeatedly.
func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	if err := seed(db); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed complete")
}

func seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	author := models.UserModel{
		Username:  "demo",
		FirstName: "Демо",
		LastName:  "Автор",
		Email:     "demo@example.com",
		Password:  string(hash),
	}
	if err := db.Where(models.UserModel{Username: author.Username}).
		FirstOrCreate(&author).Error; err != nil {
		return err
	}

	categories := []models.CategoryModel{
		{Title: "Путешествия", Description: "Заметки из поездок.", Slug: "travel"},
		{Title: "Рецепты", Description: "Что приготовить на ужин.", Slug: "recipes"},
	}
	for i := range categories {
		if err := db.Where(models.CategoryModel{Slug: categories[i].Slug}).
			FirstOrCreate(&categories[i]).Error; err != nil {
			return err
		}
	}

	locations := []models.LocationModel{
		{Name: "Москва"},
		{Name: "Санкт-Петербург"},
	}
	for i := range locations {
		if err := db.Where(models.LocationModel{Name: locations[i].Name}).
			FirstOrCreate(&locations[i]).Error; err != nil {
			return err
		}
	}

	now := time.Now()
	posts := []models.PostModel{
		{
			Title:      "Первая запись",
			Text:       "Привет! Это первая запись в блоге.",
			PubDate:    now.Add(-48 * time.Hour),
			AuthorID:   author.ID,
			CategoryID: &categories[0].ID,
			LocationID: &locations[0].ID,
		},
		{
			Title:      "Запись из будущего",
			Text:       "Эта запись станет видимой позже.",
			PubDate:    now.Add(72 * time.Hour),
			AuthorID:   author.ID,
			CategoryID: &categories[1].ID,
		},
	}
	for i := range posts {
		if err := db.Where(models.PostModel{Title: posts[i].Title, AuthorID: author.ID}).
			FirstOrCreate(&posts[i]).Error; err != nil {
			return err
		}
	}

	comment := models.CommentModel{
		Text:     "Отличный пост!",
		AuthorID: author.ID,
		PostID:   posts[0].ID,
	}
	return db.Where(models.CommentModel{PostID: comment.PostID, AuthorID: comment.AuthorID}).
		FirstOrCreate(&comment).Error
}
