package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/museshop/backend/pkg/db/models"
	"github.com/museshop/backend/pkg/enums"
)

// UserDTO is the public shape of an account, without credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"display_name"`
	Role        enums.UserRole `json:"role"`
	CreatedAt   time.Time      `json:"created_at"`
}

// FromModel converts a stored user into its public DTO.
func FromModel(user *models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
}
