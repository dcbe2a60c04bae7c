package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"minifeed/internal/httputil"
	"minifeed/internal/model"
	"minifeed/internal/service"
	"minifeed/internal/validate"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService  *service.UserService
	tokenService *service.TokenService
	log          *zap.Logger
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, tokenService *service.TokenService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		log:          log,
	}
}

// Register handles user registration
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	// Only the first validation failure is surfaced.
	if err := validate.Struct(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	_, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrEmailExists) {
			httputil.WriteBadRequest(w, "Email is already taken")
			return
		}
		h.log.Error("register failed", zap.Error(err))
		httputil.WriteInternalError(w, "Failed to register")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "account creation successful")
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		// "No such user" and "wrong password" are indistinguishable here.
		httputil.WriteBadRequest(w, "Username or password incorrect")
		return
	}

	token, err := h.tokenService.GenerateToken(user)
	if err != nil {
		h.log.Error("token generation failed", zap.Error(err))
		httputil.WriteInternalError(w, "Failed to login")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.LoginResponse{
		Token:        token,
		UserResponse: user.ToResponse(),
	})
}

// AssignRole grants a role to a user by email
// POST /api/auth/assignRole (admin only)
func (h *AuthHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req model.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.userService.AssignRole(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound), errors.Is(err, model.ErrUnknownRole):
			httputil.WriteBadRequest(w, "User email / role name incorrect")
		default:
			h.log.Error("assign role failed", zap.Error(err))
			httputil.WriteInternalError(w, "Failed to assign role")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusOK, req.RoleName+" role assigned")
}
