package model

import (
	"errors"
	"time"
)

// Follow is a directed edge recording that one user follows another.
type Follow struct {
	FollowerID string    `db:"follower_id" json:"follower_id"`
	FollowedID string    `db:"followed_id" json:"followed_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

var (
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)
