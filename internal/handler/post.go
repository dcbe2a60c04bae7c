package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"minifeed/internal/httputil"
	"minifeed/internal/model"
	"minifeed/internal/service"
	"minifeed/internal/transport/http/middleware"
	"minifeed/internal/validate"
)

type PostHandler struct {
	postService *service.PostService
	log         *zap.Logger
}

func NewPostHandler(postService *service.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		log:         log,
	}
}

// Create handles POST /api/posts
// Creates a new post for the authenticated user and points Location at its
// retrieval route.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req)
	if err != nil {
		h.log.Error("create post failed", zap.String("user_id", userID), zap.Error(err))
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/posts/%d", post.ID))
	httputil.WriteJSON(w, http.StatusCreated, post.ToResponse())
}

// GetByID handles GET /api/posts/{id}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		h.log.Error("get post failed", zap.Int64("post_id", postID), zap.Error(err))
		httputil.WriteInternalError(w, "Failed to get post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post.ToResponse())
}

// Update handles PUT /api/posts/{id}
// Replaces the post text. Only the owner may update.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	post, err := h.postService.Update(r.Context(), postID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You are not authorized to update this post")
		default:
			h.log.Error("update post failed", zap.Int64("post_id", postID), zap.Error(err))
			httputil.WriteInternalError(w, "Failed to update post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post.ToResponse())
}

// Delete handles DELETE /api/posts/{id}
// Only the owner may delete. Returns 204 with no body.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	err = h.postService.Delete(r.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You are not authorized to delete this post")
		default:
			h.log.Error("delete post failed", zap.Int64("post_id", postID), zap.Error(err))
			httputil.WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parsePostID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
