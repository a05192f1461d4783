package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/models"
)

// SocialService maintains the follow graph.
type SocialService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewSocialService creates a SocialService.
func NewSocialService(db *gorm.DB, notifier *NotificationService) *SocialService {
	return &SocialService{db: db, notifier: notifier}
}

// FollowState reports the viewer's relationship with a target after a toggle
// or a profile read. Counts are derived from the follow table.
type FollowState struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

// ToggleFollow flips the directed edge viewer -> target. The edge insert or
// delete is a single row in one transaction, so the graph cannot be left
// half-updated. Following (not unfollowing) notifies the target.
func (s *SocialService) ToggleFollow(viewer models.User, targetUsername string) (FollowState, error) {
	var target models.User
	if err := s.db.Where("username = ?", targetUsername).First(&target).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return FollowState{}, NotFoundError("user not found")
		}
		return FollowState{}, InternalError("failed to load user", err)
	}

	if target.ID == viewer.ID {
		return FollowState{}, ValidationError("you cannot follow yourself")
	}

	following := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Follow
		err := tx.Where("follower_id = ? AND followee_id = ?", viewer.ID, target.ID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(&models.Follow{FollowerID: viewer.ID, FolloweeID: target.ID}).Error; err != nil {
				return err
			}
			following = true
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return FollowState{}, InternalError("failed to toggle follow", err)
	}

	if following {
		s.notifier.Emit(target.ID, viewer, models.NotificationFollow,
			fmt.Sprintf("%s started following you", viewer.Username), nil, nil)
	}

	state, err := s.Counts(target.ID)
	if err != nil {
		return FollowState{}, err
	}
	state.Following = following
	return state, nil
}

// Counts returns the target's fresh follower/following counts.
func (s *SocialService) Counts(userID uint) (FollowState, error) {
	var state FollowState
	if err := s.db.Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&state.FollowersCount).Error; err != nil {
		return state, InternalError("failed to count followers", err)
	}
	if err := s.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&state.FollowingCount).Error; err != nil {
		return state, InternalError("failed to count following", err)
	}
	return state, nil
}

// IsFollowing reports whether follower currently follows followee.
func (s *SocialService) IsFollowing(followerID, followeeID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Follow{}).Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Count(&count).Error; err != nil {
		return false, InternalError("failed to check follow", err)
	}
	return count > 0, nil
}
