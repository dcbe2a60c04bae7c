package model

import (
	"errors"
	"time"
)

// MaxPostTextLength caps the body of a post.
const MaxPostTextLength = 140

// Post represents a short text post owned by a user.
type Post struct {
	ID         int64     `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Text       string    `db:"text" json:"text"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	LikesCount int       `db:"likes_count" json:"likes_count"`
}

// CreatePostRequest is the request body for creating or updating a post.
type CreatePostRequest struct {
	Text string `json:"text" validate:"required,min=1,max=140"`
}

// PostResponse is the externally visible shape of a post.
type PostResponse struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"userId"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	LikesCount int       `json:"likesCount"`
}

// ToResponse maps a Post to its API shape.
func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		Text:       p.Text,
		Timestamp:  p.CreatedAt,
		LikesCount: p.LikesCount,
	}
}

var (
	// ErrPostNotFound is returned when a post cannot be found
	ErrPostNotFound = errors.New("post not found")

	// ErrNotPostOwner is returned when a user acts on a post they do not own
	ErrNotPostOwner = errors.New("not the owner of this post")
)
