package services

import (
	"testing"

	"github.com/inkwellhq/inkwell/models"
)

func TestToggleFollow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSocialService(db, NewNotificationService(db))

	viewer := createUser(t, db, "bob", models.RoleUser)
	target := createUser(t, db, "alice", models.RoleUser)

	state, err := svc.ToggleFollow(viewer, "alice")
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	if !state.Following || state.FollowersCount != 1 {
		t.Fatalf("expected following with 1 follower, got %+v", state)
	}

	// The edge is directed: alice does not follow bob back.
	back, err := svc.IsFollowing(target.ID, viewer.ID)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if back {
		t.Fatalf("follow must not be symmetric")
	}

	if n := countRows(t, db, &models.Notification{}, "user_id = ? AND type = ?", target.ID, models.NotificationFollow); n != 1 {
		t.Fatalf("expected follow notification, got %d", n)
	}

	state, err = svc.ToggleFollow(viewer, "alice")
	if err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if state.Following || state.FollowersCount != 0 {
		t.Fatalf("expected unfollowed with 0 followers, got %+v", state)
	}
	if n := countRows(t, db, &models.Follow{}, ""); n != 0 {
		t.Fatalf("expected no follow rows, got %d", n)
	}
	// Unfollow never notifies.
	if n := countRows(t, db, &models.Notification{}, ""); n != 1 {
		t.Fatalf("expected only the original follow notification, got %d", n)
	}
}

func TestToggleFollowSelf(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSocialService(db, NewNotificationService(db))

	viewer := createUser(t, db, "bob", models.RoleUser)

	_, err := svc.ToggleFollow(viewer, "bob")
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := countRows(t, db, &models.Follow{}, ""); n != 0 {
		t.Fatalf("self-follow must not create an edge, got %d rows", n)
	}
}

func TestToggleFollowUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSocialService(db, NewNotificationService(db))

	viewer := createUser(t, db, "bob", models.RoleUser)

	if _, err := svc.ToggleFollow(viewer, "nobody"); KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSocialService(db, NewNotificationService(db))

	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	carol := createUser(t, db, "carol", models.RoleUser)

	if _, err := svc.ToggleFollow(bob, "alice"); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if _, err := svc.ToggleFollow(carol, "alice"); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if _, err := svc.ToggleFollow(alice, "bob"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	state, err := svc.Counts(alice.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if state.FollowersCount != 2 || state.FollowingCount != 1 {
		t.Fatalf("expected 2 followers / 1 following, got %+v", state)
	}
}
