package models

import "time"

// Blog represents a published post. AuthorName is denormalized for display;
// CommentsCount is maintained by recounting inside every comment mutation.
type Blog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AuthorID      uint      `gorm:"index;not null" json:"author_id"`
	AuthorName    string    `gorm:"size:64;not null" json:"author"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Category      string    `gorm:"size:32;index" json:"category"`
	ImageURL      string    `gorm:"size:512" json:"image_url"`
	CommentsCount int64     `gorm:"not null;default:0" json:"comments_count"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Author        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
