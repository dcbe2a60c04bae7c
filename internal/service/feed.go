package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"minifeed/internal/cache"
	"minifeed/internal/model"
	"minifeed/internal/repository"
)

// FeedService computes the ranked, paginated feed for a viewer and fronts
// it with a read-through cache.
type FeedService struct {
	feedCache   cache.FeedCache
	postRepo    repository.PostRepository
	followRepo  repository.FollowRepository
	pageSize    int
	maxPageSize int
	log         *zap.Logger
}

func NewFeedService(
	feedCache cache.FeedCache,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	pageSize, maxPageSize int,
	log *zap.Logger,
) *FeedService {
	return &FeedService{
		feedCache:   feedCache,
		postRepo:    postRepo,
		followRepo:  followRepo,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
		log:         log,
	}
}

// GetFeed returns the page of posts visible to the viewer: their own posts
// plus posts of every user they follow, ranked by likes count with a
// newest-first tie-break.
//
// Flow:
//  1. Clamp page/pageSize to valid bounds
//  2. Try the cache; a hit is returned as-is
//  3. On a miss, resolve the followed set, query the page, cache it
//
// Cache errors degrade to a fresh computation; they never fail the request.
func (s *FeedService) GetFeed(ctx context.Context, viewerID string, page, pageSize int) ([]model.PostResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	cached, hit, err := s.feedCache.Get(ctx, viewerID, page, pageSize)
	if err != nil {
		s.log.Warn("feed cache read failed",
			zap.String("viewer_id", viewerID),
			zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	posts, err := s.assemble(ctx, viewerID, page, pageSize)
	if err != nil {
		return nil, err
	}

	if err := s.feedCache.Set(ctx, viewerID, page, pageSize, posts); err != nil {
		s.log.Warn("feed cache write failed",
			zap.String("viewer_id", viewerID),
			zap.Error(err))
	}

	return posts, nil
}

// assemble runs the ranked feed query. An unknown viewer simply has an
// empty followed set and owns no posts, so the result degrades to empty.
func (s *FeedService) assemble(ctx context.Context, viewerID string, page, pageSize int) ([]model.PostResponse, error) {
	followedIDs, err := s.followRepo.GetFollowedIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get followed ids: %w", err)
	}

	// A user sees their own posts in their feed.
	ownerIDs := append(followedIDs, viewerID)

	posts, err := s.postRepo.GetFeedPage(ctx, ownerIDs, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("get feed page: %w", err)
	}

	responses := make([]model.PostResponse, len(posts))
	for i := range posts {
		responses[i] = posts[i].ToResponse()
	}
	return responses, nil
}
