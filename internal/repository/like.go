package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"minifeed/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, userID string, postID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}
	return exists, nil
}

func (r *likeRepository) Create(ctx context.Context, tx *sqlx.Tx, userID string, postID int64) error {
	query := `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`
	result, err := tx.ExecContext(ctx, query, userID, postID)
	if err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrAlreadyLiked
	}

	return nil
}
