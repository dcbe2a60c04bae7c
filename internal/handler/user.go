package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"minifeed/internal/httputil"
	"minifeed/internal/model"
	"minifeed/internal/service"
	"minifeed/internal/transport/http/middleware"
)

// UserHandler hosts the relationship endpoints: follow, unfollow and like.
type UserHandler struct {
	followService *service.FollowService
	postService   *service.PostService
	log           *zap.Logger
}

func NewUserHandler(followService *service.FollowService, postService *service.PostService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		followService: followService,
		postService:   postService,
		log:           log,
	}
}

// Follow handles POST /api/users/{username}/follow
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	followerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	username := chi.URLParam(r, "id")

	if err := h.followService.Follow(r.Context(), followerID, username); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, "You cannot follow yourself.")
		case errors.Is(err, model.ErrAlreadyFollowing):
			httputil.WriteBadRequest(w, "Already following the user")
		default:
			h.log.Error("follow failed", zap.String("follower_id", followerID), zap.Error(err))
			httputil.WriteInternalError(w, "Failed to follow user")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "User followed successfully")
}

// Unfollow handles POST /api/users/{username}/unfollow
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	followerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	username := chi.URLParam(r, "id")

	if err := h.followService.Unfollow(r.Context(), followerID, username); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, "You cannot unfollow yourself.")
		case errors.Is(err, model.ErrNotFollowing):
			httputil.WriteBadRequest(w, "You are not following this user")
		default:
			h.log.Error("unfollow failed", zap.String("follower_id", followerID), zap.Error(err))
			httputil.WriteInternalError(w, "Failed to unfollow user")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "User unfollowed successfully")
}

// Like handles POST /api/users/{postId}/like
func (h *UserHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	if err := h.postService.Like(r.Context(), postID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrAlreadyLiked):
			httputil.WriteBadRequest(w, "You have already liked this post")
		default:
			h.log.Error("like failed", zap.Int64("post_id", postID), zap.Error(err))
			httputil.WriteInternalError(w, "Failed to like post")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Post liked successfully")
}
