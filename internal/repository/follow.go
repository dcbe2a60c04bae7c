package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"minifeed/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followedID string) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	result, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFollowing
	}

	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

func (r *followRepository) GetFollowedIDs(ctx context.Context, followerID string) ([]string, error) {
	query := `SELECT followed_id FROM follows WHERE follower_id = $1`
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids, query, followerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followed ids: %w", err)
	}
	return ids, nil
}
