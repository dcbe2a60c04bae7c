package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"minifeed/internal/httputil"
	"minifeed/internal/service"
	"minifeed/internal/transport/http/middleware"
)

type FeedHandler struct {
	feedService *service.FeedService
	log         *zap.Logger
}

func NewFeedHandler(feedService *service.FeedService, log *zap.Logger) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		log:         log,
	}
}

// GetFeed handles GET /api/posts/feed
// Returns the ranked feed page for the authenticated user, cached or fresh.
//
// Query params:
//   - page: optional, 1-based page number (default 1)
//   - pageSize: optional, posts per page (default 10, max 50)
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", 0)

	posts, err := h.feedService.GetFeed(r.Context(), userID, page, pageSize)
	if err != nil {
		h.log.Error("get feed failed", zap.String("user_id", userID), zap.Error(err))
		httputil.WriteInternalError(w, "Failed to get feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// queryInt reads an integer query param, falling back when absent or
// malformed. Out-of-range values are clamped by the service.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}
