package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"minifeed/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateRole(ctx context.Context, userID, role string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	UpdateText(ctx context.Context, postID int64, text string) (*model.Post, error)
	Delete(ctx context.Context, postID int64) error
	// GetFeedPage selects posts owned by any of ownerIDs, ranked by likes
	// count with a newest-first tie-break, paginated by offset/limit.
	GetFeedPage(ctx context.Context, ownerIDs []string, offset, limit int) ([]model.Post, error)
	Exists(ctx context.Context, postID int64) (bool, error)
	// IncrementLikesCount adjusts the denormalized counter inside the
	// caller's transaction.
	IncrementLikesCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error
}

type FollowRepository interface {
	// Create inserts a follow edge. Returns false if the edge already existed.
	Create(ctx context.Context, followerID, followedID string) (bool, error)
	// Delete removes a follow edge. Returns model.ErrNotFollowing if the
	// edge does not exist.
	Delete(ctx context.Context, followerID, followedID string) error
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	// GetFollowedIDs returns the ids of every user the given user follows.
	GetFollowedIDs(ctx context.Context, followerID string) ([]string, error)
}

type LikeRepository interface {
	Exists(ctx context.Context, userID string, postID int64) (bool, error)
	// Create inserts a like edge inside the caller's transaction. Returns
	// model.ErrAlreadyLiked if the edge already exists.
	Create(ctx context.Context, tx *sqlx.Tx, userID string, postID int64) error
}
