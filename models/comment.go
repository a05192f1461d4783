package models

import "time"

// Comment is attached to a blog, optionally as a reply to another comment.
// The UI nests replies one level deep; ParentCommentID is expected to point
// at a root comment of the same blog.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	BlogID          uint      `gorm:"index;not null" json:"blog_id"`
	AuthorID        uint      `gorm:"index;not null" json:"author_id"`
	AuthorUsername  string    `gorm:"size:64;not null" json:"author_username"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
