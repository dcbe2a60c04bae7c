package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"minifeed/internal/model"
	"minifeed/internal/repository"
)

// PostService handles the post lifecycle and likes.
type PostService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
	db       *sqlx.DB
	log      *zap.Logger
}

func NewPostService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	db *sqlx.DB,
	log *zap.Logger,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		likeRepo: likeRepo,
		db:       db,
		log:      log,
	}
}

// Create creates a new post owned by userID.
func (s *PostService) Create(ctx context.Context, userID string, req model.CreatePostRequest) (*model.Post, error) {
	post := &model.Post{
		UserID: userID,
		Text:   req.Text,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info("post created",
		zap.Int64("post_id", post.ID),
		zap.String("user_id", userID))
	return post, nil
}

// GetByID retrieves a single post.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Update replaces the text of a post. Only the owner may update.
func (s *PostService) Update(ctx context.Context, postID int64, userID string, req model.CreatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, model.ErrNotPostOwner
	}

	return s.postRepo.UpdateText(ctx, postID, req.Text)
}

// Delete removes a post. Only the owner may delete.
func (s *PostService) Delete(ctx context.Context, postID int64, userID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return model.ErrNotPostOwner
	}

	return s.postRepo.Delete(ctx, postID)
}

// Like records that userID liked postID. The like edge and the denormalized
// likes_count move in one transaction: both commit or neither does.
func (s *PostService) Like(ctx context.Context, postID int64, userID string) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return model.ErrPostNotFound
	}

	liked, err := s.likeRepo.Exists(ctx, userID, postID)
	if err != nil {
		return fmt.Errorf("check like exists: %w", err)
	}
	if liked {
		return model.ErrAlreadyLiked
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.likeRepo.Create(ctx, tx, userID, postID); err != nil {
		return err
	}

	if err := s.postRepo.IncrementLikesCount(ctx, tx, postID, 1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.log.Info("post liked",
		zap.Int64("post_id", postID),
		zap.String("user_id", userID))
	return nil
}
