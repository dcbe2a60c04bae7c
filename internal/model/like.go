package model

import (
	"errors"
	"time"
)

// Like records that one user has liked one post. A user may like a given
// post at most once; the posts.likes_count column is kept equal to the
// number of Like rows referencing the post.
type Like struct {
	UserID    string    `db:"user_id" json:"user_id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ErrAlreadyLiked is returned when a user likes a post a second time.
var ErrAlreadyLiked = errors.New("post already liked")
