package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwellhq/inkwell/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// In-memory sqlite gives every connection its own database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.Comment{},
		&models.BlogLike{},
		&models.CommentLike{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Notification{},
		&models.Report{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createBlog(t *testing.T, db *gorm.DB, author models.User, title string) models.Blog {
	t.Helper()
	blog := models.Blog{
		AuthorID:   author.ID,
		AuthorName: author.Username,
		Title:      title,
		Content:    "content of " + title,
		Category:   "general",
	}
	if err := db.Create(&blog).Error; err != nil {
		t.Fatalf("create blog %s: %v", title, err)
	}
	return blog
}

func setBlogCreatedAt(t *testing.T, db *gorm.DB, blogID uint, at time.Time) {
	t.Helper()
	if err := db.Model(&models.Blog{}).Where("id = ?", blogID).Update("created_at", at).Error; err != nil {
		t.Fatalf("set created_at: %v", err)
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func likeBlogN(t *testing.T, db *gorm.DB, svc *InteractionService, blog models.Blog, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		u := createUser(t, db, fmt.Sprintf("liker-%d-%d", blog.ID, i), models.RoleUser)
		if _, err := svc.ToggleBlogLike(u, blog.ID); err != nil {
			t.Fatalf("like blog: %v", err)
		}
	}
}
