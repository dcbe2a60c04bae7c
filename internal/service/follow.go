package service

import (
	"context"

	"go.uber.org/zap"

	"minifeed/internal/cache"
	"minifeed/internal/model"
	"minifeed/internal/repository"
)

// FollowService manages follow edges between users. Any successful change
// to a user's followed set evicts that user's cached feed pages.
type FollowService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	feedCache  cache.FeedCache
	log        *zap.Logger
}

func NewFollowService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	feedCache cache.FeedCache,
	log *zap.Logger,
) *FollowService {
	return &FollowService{
		userRepo:   userRepo,
		followRepo: followRepo,
		feedCache:  feedCache,
		log:        log,
	}
}

// Follow makes followerID follow the user named username.
func (s *FollowService) Follow(ctx context.Context, followerID, username string) error {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if target.ID == followerID {
		return model.ErrCannotFollowSelf
	}

	exists, err := s.followRepo.Exists(ctx, followerID, target.ID)
	if err != nil {
		return err
	}
	if exists {
		return model.ErrAlreadyFollowing
	}

	inserted, err := s.followRepo.Create(ctx, followerID, target.ID)
	if err != nil {
		return err
	}
	if !inserted {
		// Lost a race with a concurrent follow of the same pair.
		return model.ErrAlreadyFollowing
	}

	s.invalidateFeed(ctx, followerID)
	return nil
}

// Unfollow removes the follow edge from followerID to the user named username.
func (s *FollowService) Unfollow(ctx context.Context, followerID, username string) error {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if target.ID == followerID {
		return model.ErrCannotFollowSelf
	}

	if err := s.followRepo.Delete(ctx, followerID, target.ID); err != nil {
		return err
	}

	s.invalidateFeed(ctx, followerID)
	return nil
}

// invalidateFeed evicts the follower's cached feed pages. The cache is a
// pure optimization with a bounded staleness window, so failures are logged
// and otherwise ignored.
func (s *FollowService) invalidateFeed(ctx context.Context, viewerID string) {
	if err := s.feedCache.Invalidate(ctx, viewerID); err != nil {
		s.log.Warn("feed cache invalidation failed",
			zap.String("viewer_id", viewerID),
			zap.Error(err))
	}
}
