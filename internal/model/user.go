package model

import (
	"database/sql"
	"time"
)

// User represents a user row in the database.
type User struct {
	ID             int64
	Email          string
	Username       string
	PasswordHash   string
	LegacyPassword sql.NullString
	FirstName      sql.NullString
	LastName       sql.NullString
	Role           string
	IsActive       bool
	EmailVerified  bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastLoginAt    sql.NullTime
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents user data safe for API responses. Hash fields
// are never part of this shape.
type UserResponse struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	FirstName     string     `json:"firstName,omitempty"`
	LastName      string     `json:"lastName,omitempty"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"isActive"`
	EmailVerified bool       `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}

// AuthResponse represents a successful register/login response. The session
// itself travels in cookies, not in the body.
type AuthResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// SearchUserResponse represents a single-user search result.
type SearchUserResponse struct {
	Success bool          `json:"success"`
	Exists  bool          `json:"exists"`
	User    *UserResponse `json:"user,omitempty"`
}

// BatchSearchRequest represents a batch lookup by email list.
type BatchSearchRequest struct {
	Emails []string `json:"emails"`
}

// BatchSearchResponse represents a batch lookup result. Emails with no
// matching user are simply omitted.
type BatchSearchResponse struct {
	Success bool           `json:"success"`
	Found   int            `json:"found"`
	Users   []UserResponse `json:"users"`
}

// ToResponse converts a database row to its API-safe shape.
func (u *User) ToResponse() UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Role:          u.Role,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
	if u.FirstName.Valid {
		resp.FirstName = u.FirstName.String
	}
	if u.LastName.Valid {
		resp.LastName = u.LastName.String
	}
	if u.LastLoginAt.Valid {
		t := u.LastLoginAt.Time
		resp.LastLoginAt = &t
	}
	return resp
}
