package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"minifeed/internal/config"
	"minifeed/internal/model"
)

// TokenService mints signed bearer tokens carrying a user's identity claims.
type TokenService struct {
	config *config.Config
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{config: cfg}
}

// GenerateToken returns a signed JWT for the user. Claims carry the subject
// id, email, username and role; validity comes from TOKEN_MAX_AGE (7 days by
// default).
func (s *TokenService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Username,
		"role":  user.Role,
		"iss":   s.config.JWTIssuer,
		"aud":   s.config.JWTAudience,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(s.config.TokenMaxAge) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
