package services

import (
	"testing"
	"time"

	"github.com/inkwellhq/inkwell/models"
)

func TestForYouRanksByEngagement(t *testing.T) {
	db := setupTestDB(t)
	notifier := NewNotificationService(db)
	interactions := NewInteractionService(db, notifier)
	feeds := NewFeedService(db)

	author := createUser(t, db, "alice", models.RoleUser)
	commenter := createUser(t, db, "bob", models.RoleUser)

	// Older post with 5 likes (score 15) must outrank a fresh post with
	// 1 like and 1 comment (score 4).
	oldHit := createBlog(t, db, author, "old hit")
	fresher := createBlog(t, db, author, "new one")
	setBlogCreatedAt(t, db, oldHit.ID, time.Now().Add(-48*time.Hour))
	setBlogCreatedAt(t, db, fresher.ID, time.Now())

	likeBlogN(t, db, interactions, oldHit, 5)
	likeBlogN(t, db, interactions, fresher, 1)
	if _, err := interactions.CreateComment(commenter, fresher.ID, "hi", nil); err != nil {
		t.Fatalf("comment: %v", err)
	}

	views, err := feeds.ForYou(nil)
	if err != nil {
		t.Fatalf("for you: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 blogs, got %d", len(views))
	}
	if views[0].Title != "old hit" || views[1].Title != "new one" {
		t.Fatalf("engagement ranking broken: %s, %s", views[0].Title, views[1].Title)
	}
	if views[0].LikesCount != 5 {
		t.Fatalf("expected 5 likes on first, got %d", views[0].LikesCount)
	}
}

func TestForYouTieBreaksByRecency(t *testing.T) {
	db := setupTestDB(t)
	feeds := NewFeedService(db)
	author := createUser(t, db, "alice", models.RoleUser)

	older := createBlog(t, db, author, "older")
	newer := createBlog(t, db, author, "newer")
	setBlogCreatedAt(t, db, older.ID, time.Now().Add(-time.Hour))
	setBlogCreatedAt(t, db, newer.ID, time.Now())

	views, err := feeds.ForYou(nil)
	if err != nil {
		t.Fatalf("for you: %v", err)
	}
	if views[0].Title != "newer" {
		t.Fatalf("expected recency tie-break, got %s first", views[0].Title)
	}
}

func TestFollowingFeed(t *testing.T) {
	db := setupTestDB(t)
	notifier := NewNotificationService(db)
	feeds := NewFeedService(db)
	social := NewSocialService(db, notifier)

	viewer := createUser(t, db, "bob", models.RoleUser)
	followed := createUser(t, db, "alice", models.RoleUser)
	ignored := createUser(t, db, "carol", models.RoleUser)

	createBlog(t, db, followed, "from alice")
	createBlog(t, db, ignored, "from carol")

	// Nothing followed yet: empty feed, not an error.
	views, err := feeds.Following(viewer)
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty feed, got %d", len(views))
	}

	if _, err := social.ToggleFollow(viewer, "alice"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	views, err = feeds.Following(viewer)
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	if len(views) != 1 || views[0].Title != "from alice" {
		t.Fatalf("expected only followed author's post, got %+v", views)
	}
	if !views[0].IsFollowing {
		t.Fatalf("expected is_following true on followed author's post")
	}
}

func TestBookmarkedFeed(t *testing.T) {
	db := setupTestDB(t)
	notifier := NewNotificationService(db)
	interactions := NewInteractionService(db, notifier)
	feeds := NewFeedService(db)

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	saved := createBlog(t, db, author, "saved")
	createBlog(t, db, author, "skipped")

	if _, err := interactions.ToggleBookmark(viewer, saved.ID); err != nil {
		t.Fatalf("bookmark: %v", err)
	}

	views, err := feeds.Bookmarked(viewer)
	if err != nil {
		t.Fatalf("bookmarked: %v", err)
	}
	if len(views) != 1 || views[0].Title != "saved" || !views[0].IsBookmarked {
		t.Fatalf("unexpected bookmarked feed: %+v", views)
	}
}

func TestListFiltersAndPagination(t *testing.T) {
	db := setupTestDB(t)
	feeds := NewFeedService(db)

	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)

	for i := 0; i < 3; i++ {
		createBlog(t, db, alice, "go notes")
	}
	b := createBlog(t, db, bob, "cooking")
	if err := db.Model(&models.Blog{}).Where("id = ?", b.ID).Update("category", "food").Error; err != nil {
		t.Fatalf("set category: %v", err)
	}

	views, total, err := feeds.List(BlogFilter{Author: "alice"}, 1, 2, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(views) != 2 {
		t.Fatalf("expected total 3 page of 2, got total=%d len=%d", total, len(views))
	}

	views, total, err = feeds.List(BlogFilter{Category: "food"}, 1, 10, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || views[0].Title != "cooking" {
		t.Fatalf("category filter broken: total=%d", total)
	}

	_, total, err = feeds.List(BlogFilter{Search: "cook"}, 1, 10, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("search filter broken: total=%d", total)
	}
}

func TestAnnotateViewerFlags(t *testing.T) {
	db := setupTestDB(t)
	notifier := NewNotificationService(db)
	interactions := NewInteractionService(db, notifier)
	feeds := NewFeedService(db)
	social := NewSocialService(db, notifier)

	author := createUser(t, db, "alice", models.RoleUser)
	viewer := createUser(t, db, "bob", models.RoleUser)
	blog := createBlog(t, db, author, "hello")

	if _, err := interactions.ToggleBlogLike(viewer, blog.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := interactions.ToggleBookmark(viewer, blog.ID); err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	if _, err := social.ToggleFollow(viewer, "alice"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	view, err := feeds.Get(blog.ID, &viewer)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !view.IsLiked || !view.IsBookmarked || !view.IsFollowing || view.LikesCount != 1 {
		t.Fatalf("viewer flags wrong: %+v", view)
	}

	// Anonymous view keeps the counts but no flags.
	view, err = feeds.Get(blog.ID, nil)
	if err != nil {
		t.Fatalf("get anonymous: %v", err)
	}
	if view.IsLiked || view.IsBookmarked || view.IsFollowing || view.LikesCount != 1 {
		t.Fatalf("anonymous flags wrong: %+v", view)
	}
}

func TestGetMissingBlog(t *testing.T) {
	db := setupTestDB(t)
	feeds := NewFeedService(db)

	if _, err := feeds.Get(404, nil); KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
