package services

import (
	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/models"
)

// CommentView is a comment annotated with viewer-relative fields, computed at
// read time from the like table.
type CommentView struct {
	models.Comment
	LikesCount int64         `json:"likes_count"`
	IsLiked    bool          `json:"is_liked"`
	Replies    []CommentView `json:"replies,omitempty"`
}

// ListComments returns the blog's comments assembled into a thread: root
// comments in chronological order, each carrying its direct replies. Replies
// whose parent no longer exists are hidden. The viewer may be nil.
func (s *InteractionService) ListComments(blogID uint, viewer *models.User) ([]CommentView, error) {
	var blog models.Blog
	if err := s.db.First(&blog, blogID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("blog not found")
		}
		return nil, InternalError("failed to load blog", err)
	}

	var comments []models.Comment
	if err := s.db.Where("blog_id = ?", blogID).Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		return nil, InternalError("failed to list comments", err)
	}
	if len(comments) == 0 {
		return []CommentView{}, nil
	}

	likeCounts := map[uint]int64{}
	type likeRow struct {
		CommentID uint
		Total     int64
	}
	var rows []likeRow
	if err := s.db.Model(&models.CommentLike{}).
		Select("comment_id, COUNT(*) AS total").
		Where("comment_id IN (SELECT id FROM comments WHERE blog_id = ?)", blogID).
		Group("comment_id").Scan(&rows).Error; err != nil {
		return nil, InternalError("failed to count comment likes", err)
	}
	for _, r := range rows {
		likeCounts[r.CommentID] = r.Total
	}

	likedByViewer := map[uint]bool{}
	if viewer != nil {
		var ids []uint
		if err := s.db.Model(&models.CommentLike{}).
			Where("user_id = ? AND comment_id IN (SELECT id FROM comments WHERE blog_id = ?)", viewer.ID, blogID).
			Pluck("comment_id", &ids).Error; err != nil {
			return nil, InternalError("failed to load viewer comment likes", err)
		}
		for _, id := range ids {
			likedByViewer[id] = true
		}
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			Comment:    c,
			LikesCount: likeCounts[c.ID],
			IsLiked:    likedByViewer[c.ID],
		})
	}
	return assembleThread(views), nil
}

// assembleThread groups a flat chronological comment list into roots and one
// level of replies. A reply is attached only when its parent is a root in the
// list; anything else (dangling parent, reply-to-reply chains) is orphaned
// and hidden, deterministically.
func assembleThread(flat []CommentView) []CommentView {
	rootIndex := map[uint]int{}
	roots := make([]CommentView, 0, len(flat))
	for _, c := range flat {
		if c.ParentCommentID == nil {
			rootIndex[c.ID] = len(roots)
			roots = append(roots, c)
		}
	}
	for _, c := range flat {
		if c.ParentCommentID == nil {
			continue
		}
		if idx, ok := rootIndex[*c.ParentCommentID]; ok {
			roots[idx].Replies = append(roots[idx].Replies, c)
		}
	}
	return roots
}
