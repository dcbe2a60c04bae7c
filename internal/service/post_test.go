package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"minifeed/internal/model"
)

type mockLikeRepository struct {
	existsFn func(ctx context.Context, userID string, postID int64) (bool, error)
	createFn func(ctx context.Context, tx *sqlx.Tx, userID string, postID int64) error
}

func (m *mockLikeRepository) Exists(ctx context.Context, userID string, postID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, postID)
	}
	return false, nil
}

func (m *mockLikeRepository) Create(ctx context.Context, tx *sqlx.Tx, userID string, postID int64) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, userID, postID)
	}
	return nil
}

func TestPostService_Create(t *testing.T) {
	postRepo := &mockPostRepository{
		createFn: func(ctx context.Context, post *model.Post) error {
			post.ID = 42
			return nil
		},
	}
	svc := NewPostService(postRepo, &mockLikeRepository{}, nil, zap.NewNop())

	post, err := svc.Create(context.Background(), "alice-id", model.CreatePostRequest{Text: "hello world"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if post.ID != 42 {
		t.Errorf("post id = %d, want 42", post.ID)
	}
	if post.UserID != "alice-id" {
		t.Errorf("post user id = %q, want alice-id", post.UserID)
	}
	if post.Text != "hello world" {
		t.Errorf("post text = %q, want %q", post.Text, "hello world")
	}
}

func TestPostService_Update(t *testing.T) {
	existing := &model.Post{ID: 1, UserID: "alice-id", Text: "original"}

	tests := []struct {
		name      string
		userID    string
		getByIDFn func(ctx context.Context, postID int64) (*model.Post, error)
		wantErr   error
	}{
		{
			name:   "owner can update",
			userID: "alice-id",
			getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
				return existing, nil
			},
			wantErr: nil,
		},
		{
			name:   "non-owner is rejected",
			userID: "bob-id",
			getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
				return existing, nil
			},
			wantErr: model.ErrNotPostOwner,
		},
		{
			name:   "missing post",
			userID: "alice-id",
			getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
				return nil, model.ErrPostNotFound
			},
			wantErr: model.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := &mockPostRepository{
				getByIDFn: tt.getByIDFn,
				updateTextFn: func(ctx context.Context, postID int64, text string) (*model.Post, error) {
					return &model.Post{ID: postID, UserID: "alice-id", Text: text}, nil
				},
			}
			svc := NewPostService(postRepo, &mockLikeRepository{}, nil, zap.NewNop())

			post, err := svc.Update(context.Background(), 1, tt.userID, model.CreatePostRequest{Text: "updated"})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if post.Text != "updated" {
				t.Errorf("post text = %q, want %q", post.Text, "updated")
			}
		})
	}
}

func TestPostService_Delete(t *testing.T) {
	existing := &model.Post{ID: 1, UserID: "alice-id", Text: "doomed"}

	tests := []struct {
		name        string
		userID      string
		getByIDFn   func(ctx context.Context, postID int64) (*model.Post, error)
		wantErr     error
		wantDeleted bool
	}{
		{
			name:   "owner can delete",
			userID: "alice-id",
			getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
				return existing, nil
			},
			wantDeleted: true,
		},
		{
			name:   "non-owner is rejected",
			userID: "bob-id",
			getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
				return existing, nil
			},
			wantErr: model.ErrNotPostOwner,
		},
		{
			name:   "missing post",
			userID: "alice-id",
			getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
				return nil, model.ErrPostNotFound
			},
			wantErr: model.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			postRepo := &mockPostRepository{
				getByIDFn: tt.getByIDFn,
				deleteFn: func(ctx context.Context, postID int64) error {
					deleted = true
					return nil
				},
			}
			svc := NewPostService(postRepo, &mockLikeRepository{}, nil, zap.NewNop())

			err := svc.Delete(context.Background(), 1, tt.userID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if deleted != tt.wantDeleted {
				t.Errorf("deleted = %v, want %v", deleted, tt.wantDeleted)
			}
		})
	}
}

// The transactional like path needs a live database; these cover the checks
// that run before the transaction begins.
func TestPostService_Like_PostNotFound(t *testing.T) {
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) {
			return false, nil
		},
	}
	svc := NewPostService(postRepo, &mockLikeRepository{}, nil, zap.NewNop())

	err := svc.Like(context.Background(), 99, "alice-id")
	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
	}
}

func TestPostService_Like_AlreadyLiked(t *testing.T) {
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) {
			return true, nil
		},
	}
	likeRepo := &mockLikeRepository{
		existsFn: func(ctx context.Context, userID string, postID int64) (bool, error) {
			return true, nil
		},
	}
	svc := NewPostService(postRepo, likeRepo, nil, zap.NewNop())

	err := svc.Like(context.Background(), 1, "alice-id")
	if !errors.Is(err, model.ErrAlreadyLiked) {
		t.Errorf("error = %v, want %v", err, model.ErrAlreadyLiked)
	}
}
