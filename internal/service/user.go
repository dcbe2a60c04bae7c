package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"minifeed/internal/model"
	"minifeed/internal/repository"
)

// UserService handles registration, credential verification and role
// assignment.
type UserService struct {
	repo repository.UserRepository
	log  *zap.Logger
}

func NewUserService(repo repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Register creates a new user account. The username is the email address.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Email,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PhoneNumber:    req.PhoneNumber,
		Role:           model.RoleUser,
		PasswordHashed: string(hashedPassword),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials. "No such user" and "wrong password" both
// collapse to ErrInvalidCredentials so the API boundary cannot be used to
// probe for accounts.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// AssignRole grants a role to the user identified by email.
func (s *UserService) AssignRole(ctx context.Context, req *model.AssignRoleRequest) error {
	if req.RoleName != model.RoleUser && req.RoleName != model.RoleAdmin {
		return model.ErrUnknownRole
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateRole(ctx, user.ID, req.RoleName); err != nil {
		return err
	}

	s.log.Info("role assigned",
		zap.String("user_id", user.ID),
		zap.String("role", req.RoleName))
	return nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}
