package model

import "time"

// User represents an account, either local (password) or federated (Google).
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"`
	GoogleID     *string   `json:"-"`
	Picture      *string   `json:"picture,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the payload for self-service registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the payload for local authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=80"`
	Password string `json:"password" binding:"required,max=128"`
}

// GoogleCallbackRequest carries the access token obtained by the frontend
// OAuth flow. The handshake itself happens outside this service.
type GoogleCallbackRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// CreateUserRequest is the admin payload for creating an account.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserRequest is the admin payload for editing an account.
// Password is optional; empty means keep the current one.
type UpdateUserRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=80"`
	Email    string `json:"email" binding:"omitempty,email,max=120"`
	Password string `json:"password" binding:"omitempty,min=6,max=128"`
	IsAdmin  *bool  `json:"is_admin" binding:"omitempty"`
}
