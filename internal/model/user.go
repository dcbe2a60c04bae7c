package model

import (
	"errors"
	"time"
)

// Roles a user can hold. The deployment only distinguishes regular
// users from administrators.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID             string    `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	PhoneNumber    string    `db:"phone_number" json:"phone_number"`
	Role           string    `db:"role" json:"-"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	CreatedDate    time.Time `db:"created_date" json:"created_date"`
}

// RegisterRequest represents the data needed to register a new user.
type RegisterRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the data needed to log in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AssignRoleRequest grants a role to the user identified by email.
type AssignRoleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	RoleName string `json:"roleName" validate:"required"`
}

// UserResponse is the externally visible shape of a user record.
type UserResponse struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Username    string    `json:"username"`
	CreatedDate time.Time `json:"createdDate"`
}

// LoginResponse carries the signed token together with the user it identifies.
type LoginResponse struct {
	Token        string       `json:"token"`
	UserResponse UserResponse `json:"userResponse"`
}

// ToResponse maps a User to its API shape.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Username:    u.Username,
		CreatedDate: u.CreatedDate,
	}
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when attempting to register an email that is taken
	ErrEmailExists = errors.New("email is already taken")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownRole is returned when assigning a role that does not exist
	ErrUnknownRole = errors.New("unknown role")
)
