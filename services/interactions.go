package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/models"
)

// InteractionService implements the like/bookmark toggles, comment creation
// and the deletion cascades around a blog.
type InteractionService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewInteractionService creates an InteractionService.
func NewInteractionService(db *gorm.DB, notifier *NotificationService) *InteractionService {
	return &InteractionService{db: db, notifier: notifier}
}

// ToggleState is the result of a toggle: the new boolean state and the count
// recomputed from persisted rows, never from client input.
type ToggleState struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}

// ToggleBlogLike flips the viewer's membership in the blog's liked-by set.
// Liking (not unliking) notifies the blog's author.
func (s *InteractionService) ToggleBlogLike(viewer models.User, blogID uint) (ToggleState, error) {
	var blog models.Blog
	if err := s.db.First(&blog, blogID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ToggleState{}, NotFoundError("blog not found")
		}
		return ToggleState{}, InternalError("failed to load blog", err)
	}

	liked := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.BlogLike
		err := tx.Where("blog_id = ? AND user_id = ?", blog.ID, viewer.ID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(&models.BlogLike{BlogID: blog.ID, UserID: viewer.ID}).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return ToggleState{}, InternalError("failed to toggle like", err)
	}

	if liked {
		s.notifier.Emit(blog.AuthorID, viewer, models.NotificationLike,
			fmt.Sprintf("%s liked your post %q", viewer.Username, blog.Title), &blog.ID, nil)
	}

	count, err := s.blogLikesCount(blog.ID)
	if err != nil {
		return ToggleState{}, err
	}
	return ToggleState{Active: liked, Count: count}, nil
}

// ToggleBookmark flips the blog's membership in the viewer's bookmark set.
// No notification: bookmarks are private to the viewer.
func (s *InteractionService) ToggleBookmark(viewer models.User, blogID uint) (ToggleState, error) {
	var blog models.Blog
	if err := s.db.First(&blog, blogID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ToggleState{}, NotFoundError("blog not found")
		}
		return ToggleState{}, InternalError("failed to load blog", err)
	}

	bookmarked := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Bookmark
		err := tx.Where("user_id = ? AND blog_id = ?", viewer.ID, blog.ID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(&models.Bookmark{UserID: viewer.ID, BlogID: blog.ID}).Error; err != nil {
				return err
			}
			bookmarked = true
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return ToggleState{}, InternalError("failed to toggle bookmark", err)
	}

	var count int64
	if err := s.db.Model(&models.Bookmark{}).Where("user_id = ?", viewer.ID).Count(&count).Error; err != nil {
		return ToggleState{}, InternalError("failed to count bookmarks", err)
	}
	return ToggleState{Active: bookmarked, Count: count}, nil
}

// ToggleCommentLike flips the viewer's membership in a comment's liked-by set.
func (s *InteractionService) ToggleCommentLike(viewer models.User, commentID uint) (ToggleState, error) {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ToggleState{}, NotFoundError("comment not found")
		}
		return ToggleState{}, InternalError("failed to load comment", err)
	}

	liked := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CommentLike
		err := tx.Where("comment_id = ? AND user_id = ?", comment.ID, viewer.ID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(&models.CommentLike{CommentID: comment.ID, UserID: viewer.ID}).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return ToggleState{}, InternalError("failed to toggle comment like", err)
	}

	var count int64
	if err := s.db.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&count).Error; err != nil {
		return ToggleState{}, InternalError("failed to count comment likes", err)
	}
	return ToggleState{Active: liked, Count: count}, nil
}

// CreateComment attaches a comment to a blog, optionally as a reply. The
// parent must exist and belong to the same blog. The blog's comments counter
// is recounted in the same transaction as the insert.
func (s *InteractionService) CreateComment(viewer models.User, blogID uint, content string, parentID *uint) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ValidationError("comment content cannot be empty")
	}

	var blog models.Blog
	if err := s.db.First(&blog, blogID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("blog not found")
		}
		return nil, InternalError("failed to load blog", err)
	}

	var parent *models.Comment
	if parentID != nil {
		parent = &models.Comment{}
		if err := s.db.First(parent, *parentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ValidationError("invalid parent comment")
			}
			return nil, InternalError("failed to load parent comment", err)
		}
		if parent.BlogID != blog.ID {
			return nil, ValidationError("invalid parent comment")
		}
	}

	comment := models.Comment{
		BlogID:          blog.ID,
		AuthorID:        viewer.ID,
		AuthorUsername:  viewer.Username,
		Content:         content,
		ParentCommentID: parentID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return refreshCommentsCount(tx, blog.ID)
	})
	if err != nil {
		return nil, InternalError("failed to create comment", err)
	}

	ntype := models.NotificationComment
	message := fmt.Sprintf("%s commented on your post %q", viewer.Username, blog.Title)
	if parent != nil {
		ntype = models.NotificationReply
		message = fmt.Sprintf("%s replied in a thread on your post %q", viewer.Username, blog.Title)
	}
	s.notifier.Emit(blog.AuthorID, viewer, ntype, message, &blog.ID, &comment.ID)

	return &comment, nil
}

// DeleteComment removes a comment and its direct replies (one level, matching
// the UI's nesting depth) and decrements the blog's counter by the total
// removed, all in one transaction. Only the author or an admin may delete.
func (s *InteractionService) DeleteComment(viewer models.User, commentID uint) (int64, error) {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, NotFoundError("comment not found")
		}
		return 0, InternalError("failed to load comment", err)
	}

	if comment.AuthorID != viewer.ID && !viewer.IsAdmin() {
		return 0, ForbiddenError("you can only delete your own comment")
	}

	var removed int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? OR parent_comment_id = ?", comment.ID, comment.ID).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		if err := tx.Where("comment_id NOT IN (SELECT id FROM comments)").Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		return refreshCommentsCount(tx, comment.BlogID)
	})
	if err != nil {
		return 0, InternalError("failed to delete comment", err)
	}
	return removed, nil
}

// DeleteBlog removes a blog with everything hanging off it: comments, likes
// and bookmark rows. Only the author or an admin may delete.
func (s *InteractionService) DeleteBlog(viewer models.User, blogID uint) error {
	var blog models.Blog
	if err := s.db.First(&blog, blogID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return NotFoundError("blog not found")
		}
		return InternalError("failed to load blog", err)
	}

	if blog.AuthorID != viewer.ID && !viewer.IsAdmin() {
		return ForbiddenError("you can only delete your own blog")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id IN (SELECT id FROM comments WHERE blog_id = ?)", blog.ID).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.BlogLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&blog).Error
	})
	if err != nil {
		return InternalError("failed to delete blog", err)
	}
	return nil
}

func (s *InteractionService) blogLikesCount(blogID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.BlogLike{}).Where("blog_id = ?", blogID).Count(&count).Error; err != nil {
		return 0, InternalError("failed to count likes", err)
	}
	return count, nil
}

// refreshCommentsCount recounts a blog's comments from the comment table.
// Called inside every comment mutation's transaction so the denormalized
// counter can never drift.
func refreshCommentsCount(tx *gorm.DB, blogID uint) error {
	var count int64
	if err := tx.Model(&models.Comment{}).Where("blog_id = ?", blogID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.Blog{}).Where("id = ?", blogID).Update("comments_count", count).Error
}
