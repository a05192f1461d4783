package services

import (
	"testing"

	"github.com/inkwellhq/inkwell/models"
)

func TestToggleBlogLike(t *testing.T) {
	db := setupTestDB(t)
	notifier := NewNotificationService(db)
	svc := NewInteractionService(db, notifier)

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	blog := createBlog(t, db, author, "hello")

	state, err := svc.ToggleBlogLike(viewer, blog.ID)
	if err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if !state.Active || state.Count != 1 {
		t.Fatalf("expected liked with count 1, got %+v", state)
	}

	// Toggling again removes the like.
	state, err = svc.ToggleBlogLike(viewer, blog.ID)
	if err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if state.Active || state.Count != 0 {
		t.Fatalf("expected unliked with count 0, got %+v", state)
	}
	if n := countRows(t, db, &models.BlogLike{}, ""); n != 0 {
		t.Fatalf("expected no like rows, got %d", n)
	}
}

func TestToggleBlogLikeIsSetNotCounter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	blog := createBlog(t, db, author, "hello")

	for i := 0; i < 5; i++ {
		if _, err := svc.ToggleBlogLike(viewer, blog.ID); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	// Odd number of toggles ends liked, with exactly one row.
	if n := countRows(t, db, &models.BlogLike{}, "blog_id = ?", blog.ID); n != 1 {
		t.Fatalf("expected 1 like row after 5 toggles, got %d", n)
	}
}

func TestToggleBlogLikeNotifiesAuthorOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	blog := createBlog(t, db, author, "hello")

	if _, err := svc.ToggleBlogLike(viewer, blog.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := svc.ToggleBlogLike(viewer, blog.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}

	// Only the like notifies, not the unlike.
	if n := countRows(t, db, &models.Notification{}, "user_id = ? AND type = ?", author.ID, models.NotificationLike); n != 1 {
		t.Fatalf("expected 1 like notification, got %d", n)
	}
}

func TestToggleBlogLikeOwnPostNoNotification(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	blog := createBlog(t, db, author, "hello")

	if _, err := svc.ToggleBlogLike(author, blog.ID); err != nil {
		t.Fatalf("like own post: %v", err)
	}
	if n := countRows(t, db, &models.Notification{}, ""); n != 0 {
		t.Fatalf("expected no notification for self-like, got %d", n)
	}
}

func TestToggleBlogLikeMissingBlog(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))
	viewer := createUser(t, db, "bob", models.RoleUser)

	_, err := svc.ToggleBlogLike(viewer, 9999)
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleBookmark(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	blogA := createBlog(t, db, author, "first")
	blogB := createBlog(t, db, author, "second")

	state, err := svc.ToggleBookmark(viewer, blogA.ID)
	if err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	if !state.Active || state.Count != 1 {
		t.Fatalf("expected bookmarked with count 1, got %+v", state)
	}

	state, err = svc.ToggleBookmark(viewer, blogB.ID)
	if err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	// Count is the viewer's bookmark total, not per blog.
	if state.Count != 2 {
		t.Fatalf("expected bookmark count 2, got %+v", state)
	}

	state, err = svc.ToggleBookmark(viewer, blogA.ID)
	if err != nil {
		t.Fatalf("unbookmark: %v", err)
	}
	if state.Active || state.Count != 1 {
		t.Fatalf("expected unbookmarked with count 1, got %+v", state)
	}

	// Bookmarks never notify anyone.
	if n := countRows(t, db, &models.Notification{}, ""); n != 0 {
		t.Fatalf("expected no notifications from bookmarks, got %d", n)
	}
}

func TestCreateComment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	blog := createBlog(t, db, author, "hello")

	comment, err := svc.CreateComment(viewer, blog.ID, "nice post", nil)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.AuthorUsername != "bob" || comment.ParentCommentID != nil {
		t.Fatalf("unexpected comment: %+v", comment)
	}

	var fresh models.Blog
	if err := db.First(&fresh, blog.ID).Error; err != nil {
		t.Fatalf("reload blog: %v", err)
	}
	if fresh.CommentsCount != 1 {
		t.Fatalf("expected comments_count 1, got %d", fresh.CommentsCount)
	}
	if n := countRows(t, db, &models.Notification{}, "user_id = ? AND type = ?", author.ID, models.NotificationComment); n != 1 {
		t.Fatalf("expected comment notification, got %d", n)
	}
}

func TestCreateCommentValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	blog := createBlog(t, db, author, "hello")

	if _, err := svc.CreateComment(viewer, blog.ID, "   ", nil); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for empty content, got %v", err)
	}
	if _, err := svc.CreateComment(viewer, 9999, "hi", nil); KindOf(err) != KindNotFound {
		t.Fatalf("expected not found for missing blog, got %v", err)
	}

	missing := uint(9999)
	if _, err := svc.CreateComment(viewer, blog.ID, "hi", &missing); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for missing parent, got %v", err)
	}
}

func TestCreateCommentParentMustMatchBlog(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	blogA := createBlog(t, db, author, "first")
	blogB := createBlog(t, db, author, "second")

	parent, err := svc.CreateComment(viewer, blogA.ID, "root", nil)
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}

	if _, err := svc.CreateComment(viewer, blogB.ID, "reply", &parent.ID); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for cross-blog parent, got %v", err)
	}
}

func TestReplyNotification(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	blog := createBlog(t, db, author, "hello")

	parent, err := svc.CreateComment(viewer, blog.ID, "root", nil)
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if _, err := svc.CreateComment(viewer, blog.ID, "reply", &parent.ID); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	// Replies reach the blog author as type reply.
	if n := countRows(t, db, &models.Notification{}, "user_id = ? AND type = ?", author.ID, models.NotificationReply); n != 1 {
		t.Fatalf("expected reply notification for blog author, got %d", n)
	}
}

func TestDeleteCommentCascade(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	liker := createUser(t, db, "carol", models.RoleUser)
	blog := createBlog(t, db, author, "hello")

	parent, err := svc.CreateComment(viewer, blog.ID, "root", nil)
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	reply1, err := svc.CreateComment(author, blog.ID, "reply one", &parent.ID)
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}
	if _, err := svc.CreateComment(author, blog.ID, "reply two", &parent.ID); err != nil {
		t.Fatalf("create reply: %v", err)
	}
	other, err := svc.CreateComment(liker, blog.ID, "unrelated", nil)
	if err != nil {
		t.Fatalf("create other: %v", err)
	}
	if _, err := svc.ToggleCommentLike(liker, reply1.ID); err != nil {
		t.Fatalf("like reply: %v", err)
	}
	if _, err := svc.ToggleCommentLike(liker, other.ID); err != nil {
		t.Fatalf("like other: %v", err)
	}

	removed, err := svc.DeleteComment(viewer, parent.ID)
	if err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed (parent + 2 replies), got %d", removed)
	}

	var fresh models.Blog
	if err := db.First(&fresh, blog.ID).Error; err != nil {
		t.Fatalf("reload blog: %v", err)
	}
	if fresh.CommentsCount != 1 {
		t.Fatalf("expected comments_count 1, got %d", fresh.CommentsCount)
	}

	// Likes on deleted comments are swept, the unrelated one survives.
	if n := countRows(t, db, &models.CommentLike{}, ""); n != 1 {
		t.Fatalf("expected 1 comment like left, got %d", n)
	}
	if n := countRows(t, db, &models.CommentLike{}, "comment_id = ?", other.ID); n != 1 {
		t.Fatalf("expected surviving like on unrelated comment, got %d", n)
	}
}

func TestDeleteCommentPermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	stranger := createUser(t, db, "mallory", models.RoleUser)
	admin := createUser(t, db, "root", models.RoleAdmin)
	blog := createBlog(t, db, author, "hello")

	comment, err := svc.CreateComment(viewer, blog.ID, "root", nil)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if _, err := svc.DeleteComment(stranger, comment.ID); KindOf(err) != KindForbidden {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}
	if _, err := svc.DeleteComment(admin, comment.ID); err != nil {
		t.Fatalf("admin delete should succeed: %v", err)
	}
}

func TestDeleteBlogCascade(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInteractionService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	blog := createBlog(t, db, author, "hello")
	keep := createBlog(t, db, author, "survivor")

	comment, err := svc.CreateComment(viewer, blog.ID, "hi", nil)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := svc.ToggleCommentLike(viewer, comment.ID); err != nil {
		t.Fatalf("like comment: %v", err)
	}
	if _, err := svc.ToggleBlogLike(viewer, blog.ID); err != nil {
		t.Fatalf("like blog: %v", err)
	}
	if _, err := svc.ToggleBookmark(viewer, blog.ID); err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	if _, err := svc.ToggleBookmark(viewer, keep.ID); err != nil {
		t.Fatalf("bookmark keep: %v", err)
	}

	if err := svc.DeleteBlog(viewer, blog.ID); KindOf(err) != KindForbidden {
		t.Fatalf("expected forbidden for non-author, got %v", err)
	}
	if err := svc.DeleteBlog(author, blog.ID); err != nil {
		t.Fatalf("delete blog: %v", err)
	}

	if n := countRows(t, db, &models.Blog{}, ""); n != 1 {
		t.Fatalf("expected 1 blog left, got %d", n)
	}
	if n := countRows(t, db, &models.Comment{}, ""); n != 0 {
		t.Fatalf("expected no comments, got %d", n)
	}
	if n := countRows(t, db, &models.BlogLike{}, ""); n != 0 {
		t.Fatalf("expected no blog likes, got %d", n)
	}
	if n := countRows(t, db, &models.CommentLike{}, ""); n != 0 {
		t.Fatalf("expected no comment likes, got %d", n)
	}
	if n := countRows(t, db, &models.Bookmark{}, ""); n != 1 {
		t.Fatalf("expected bookmark on surviving blog only, got %d", n)
	}
}
