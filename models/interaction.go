package models

import "time"

// BlogLike marks that a user likes a blog. The unique index gives the
// likedBy set its membership semantics.
type BlogLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlogID    uint      `gorm:"index:idx_blog_like,unique;not null" json:"blog_id"`
	UserID    uint      `gorm:"index:idx_blog_like,unique;index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike marks that a user likes a comment.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"index:idx_comment_like,unique;not null" json:"comment_id"`
	UserID    uint      `gorm:"index:idx_comment_like,unique;index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark marks that a user saved a blog. Ownership is inverted relative to
// likes: the bookmark list belongs to the user, not the blog.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_bookmark,unique;index;not null" json:"user_id"`
	BlogID    uint      `gorm:"index:idx_bookmark,unique;not null" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow is a directed edge in the social graph: follower follows followee.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"index:idx_follow,unique;index;not null" json:"follower_id"`
	FolloweeID uint      `gorm:"index:idx_follow,unique;index;not null" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
