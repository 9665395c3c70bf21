package auth

import "github.com/museshop/backend/internal/users"

// RegisterRequest carries the sign-up payload.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"max=120"`
}

// LoginRequest carries the credential pair.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the expired access token plus its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is an access/refresh token couple.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse is returned on register and login.
type LoginResponse struct {
	TokenPair
	User users.UserDTO `json:"user"`
}
