package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"minifeed/internal/model"
)

type mockFollowRepository struct {
	createFn         func(ctx context.Context, followerID, followedID string) (bool, error)
	deleteFn         func(ctx context.Context, followerID, followedID string) error
	existsFn         func(ctx context.Context, followerID, followedID string) (bool, error)
	getFollowedIDsFn func(ctx context.Context, followerID string) ([]string, error)

	createCalls int
	deleteCalls int
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followedID string) (bool, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, followerID, followedID)
	}
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followedID string) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, followedID)
	}
	return nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followedID)
	}
	return false, nil
}

func (m *mockFollowRepository) GetFollowedIDs(ctx context.Context, followerID string) ([]string, error) {
	if m.getFollowedIDsFn != nil {
		return m.getFollowedIDsFn(ctx, followerID)
	}
	return nil, nil
}

// mockFeedCache records invalidations and serves canned pages.
type mockFeedCache struct {
	getFn func(ctx context.Context, viewerID string, page, pageSize int) ([]model.PostResponse, bool, error)
	setFn func(ctx context.Context, viewerID string, page, pageSize int, posts []model.PostResponse) error

	setCalls           int
	invalidatedViewers []string
	invalidateErr      error
}

func (m *mockFeedCache) Get(ctx context.Context, viewerID string, page, pageSize int) ([]model.PostResponse, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, viewerID, page, pageSize)
	}
	return nil, false, nil
}

func (m *mockFeedCache) Set(ctx context.Context, viewerID string, page, pageSize int, posts []model.PostResponse) error {
	m.setCalls++
	if m.setFn != nil {
		return m.setFn(ctx, viewerID, page, pageSize, posts)
	}
	return nil
}

func (m *mockFeedCache) Invalidate(ctx context.Context, viewerID string) error {
	m.invalidatedViewers = append(m.invalidatedViewers, viewerID)
	return m.invalidateErr
}

func userByUsername(users map[string]*model.User) func(ctx context.Context, username string) (*model.User, error) {
	return func(ctx context.Context, username string) (*model.User, error) {
		if u, ok := users[username]; ok {
			return u, nil
		}
		return nil, model.ErrUserNotFound
	}
}

func TestFollowService_Follow_Success(t *testing.T) {
	users := map[string]*model.User{
		"bob@example.com": {ID: "bob-id", Username: "bob@example.com"},
	}
	userRepo := &mockUserRepository{getByUsernameFn: userByUsername(users)}
	followRepo := &mockFollowRepository{}
	feedCache := &mockFeedCache{}
	svc := NewFollowService(userRepo, followRepo, feedCache, zap.NewNop())

	err := svc.Follow(context.Background(), "alice-id", "bob@example.com")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if followRepo.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", followRepo.createCalls)
	}

	// Following changes what alice's feed should contain, so her cached
	// pages must be evicted.
	if len(feedCache.invalidatedViewers) != 1 || feedCache.invalidatedViewers[0] != "alice-id" {
		t.Errorf("invalidated viewers = %v, want [alice-id]", feedCache.invalidatedViewers)
	}
}

func TestFollowService_Follow_Errors(t *testing.T) {
	users := map[string]*model.User{
		"alice@example.com": {ID: "alice-id", Username: "alice@example.com"},
		"bob@example.com":   {ID: "bob-id", Username: "bob@example.com"},
	}

	tests := []struct {
		name     string
		username string
		existsFn func(ctx context.Context, followerID, followedID string) (bool, error)
		createFn func(ctx context.Context, followerID, followedID string) (bool, error)
		wantErr  error
	}{
		{
			name:     "target not found",
			username: "nobody@example.com",
			wantErr:  model.ErrUserNotFound,
		},
		{
			name:     "self follow",
			username: "alice@example.com",
			wantErr:  model.ErrCannotFollowSelf,
		},
		{
			name:     "already following",
			username: "bob@example.com",
			existsFn: func(ctx context.Context, followerID, followedID string) (bool, error) {
				return true, nil
			},
			wantErr: model.ErrAlreadyFollowing,
		},
		{
			name:     "lost insert race",
			username: "bob@example.com",
			createFn: func(ctx context.Context, followerID, followedID string) (bool, error) {
				return false, nil
			},
			wantErr: model.ErrAlreadyFollowing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{getByUsernameFn: userByUsername(users)}
			followRepo := &mockFollowRepository{existsFn: tt.existsFn, createFn: tt.createFn}
			feedCache := &mockFeedCache{}
			svc := NewFollowService(userRepo, followRepo, feedCache, zap.NewNop())

			err := svc.Follow(context.Background(), "alice-id", tt.username)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(feedCache.invalidatedViewers) != 0 {
				t.Error("cache should not be invalidated when follow fails")
			}
		})
	}
}

func TestFollowService_Unfollow_Success(t *testing.T) {
	users := map[string]*model.User{
		"bob@example.com": {ID: "bob-id", Username: "bob@example.com"},
	}
	userRepo := &mockUserRepository{getByUsernameFn: userByUsername(users)}
	followRepo := &mockFollowRepository{}
	feedCache := &mockFeedCache{}
	svc := NewFollowService(userRepo, followRepo, feedCache, zap.NewNop())

	err := svc.Unfollow(context.Background(), "alice-id", "bob@example.com")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if followRepo.deleteCalls != 1 {
		t.Errorf("Delete called %d times, want 1", followRepo.deleteCalls)
	}

	// Unfollowing also reshapes the feed, so the cache is evicted here too.
	if len(feedCache.invalidatedViewers) != 1 || feedCache.invalidatedViewers[0] != "alice-id" {
		t.Errorf("invalidated viewers = %v, want [alice-id]", feedCache.invalidatedViewers)
	}
}

func TestFollowService_Unfollow_NotFollowing(t *testing.T) {
	users := map[string]*model.User{
		"bob@example.com": {ID: "bob-id", Username: "bob@example.com"},
	}
	userRepo := &mockUserRepository{getByUsernameFn: userByUsername(users)}
	followRepo := &mockFollowRepository{
		deleteFn: func(ctx context.Context, followerID, followedID string) error {
			return model.ErrNotFollowing
		},
	}
	feedCache := &mockFeedCache{}
	svc := NewFollowService(userRepo, followRepo, feedCache, zap.NewNop())

	err := svc.Unfollow(context.Background(), "alice-id", "bob@example.com")
	if !errors.Is(err, model.ErrNotFollowing) {
		t.Errorf("error = %v, want %v", err, model.ErrNotFollowing)
	}
	if len(feedCache.invalidatedViewers) != 0 {
		t.Error("cache should not be invalidated when unfollow fails")
	}
}

func TestFollowService_Follow_CacheFailureDoesNotFailRequest(t *testing.T) {
	users := map[string]*model.User{
		"bob@example.com": {ID: "bob-id", Username: "bob@example.com"},
	}
	userRepo := &mockUserRepository{getByUsernameFn: userByUsername(users)}
	followRepo := &mockFollowRepository{}
	feedCache := &mockFeedCache{invalidateErr: errors.New("redis down")}
	svc := NewFollowService(userRepo, followRepo, feedCache, zap.NewNop())

	if err := svc.Follow(context.Background(), "alice-id", "bob@example.com"); err != nil {
		t.Errorf("cache failure should not fail the follow, got: %v", err)
	}
}
