package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"minifeed/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (user_id, text)
		VALUES ($1, $2)
		RETURNING id, user_id, text, created_at, likes_count
	`
	err := r.db.GetContext(ctx, post, query, post.UserID, post.Text)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := `
		SELECT id, user_id, text, created_at, likes_count
		FROM posts
		WHERE id = $1
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// UpdateText replaces the body of a post and returns the updated row.
func (r *postRepository) UpdateText(ctx context.Context, postID int64, text string) (*model.Post, error) {
	query := `
		UPDATE posts SET text = $1
		WHERE id = $2
		RETURNING id, user_id, text, created_at, likes_count
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, text, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &post, nil
}

// Delete removes a post. Like edges go with it via the foreign key cascade.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

// GetFeedPage selects posts owned by any of ownerIDs, ordered by likes count
// descending. Ties break newest-first, then by id, so pagination is stable
// across requests.
func (r *postRepository) GetFeedPage(ctx context.Context, ownerIDs []string, offset, limit int) ([]model.Post, error) {
	if len(ownerIDs) == 0 {
		return []model.Post{}, nil
	}

	query := `
		SELECT id, user_id, text, created_at, likes_count
		FROM posts
		WHERE user_id = ANY($1)
		ORDER BY likes_count DESC, created_at DESC, id DESC
		OFFSET $2 LIMIT $3
	`
	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, query, pq.Array(ownerIDs), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("get feed page: %w", err)
	}
	return posts, nil
}

// Exists checks if a post exists
func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, postID)
	if err != nil {
		return false, fmt.Errorf("check post existence: %w", err)
	}
	return exists, nil
}

// IncrementLikesCount adjusts the denormalized counter inside the caller's
// transaction so edge insert and counter move commit together.
func (r *postRepository) IncrementLikesCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error {
	query := `UPDATE posts SET likes_count = likes_count + $1 WHERE id = $2`
	_, err := tx.ExecContext(ctx, query, delta, postID)
	if err != nil {
		return fmt.Errorf("increment likes count: %w", err)
	}
	return nil
}
