package users

import (
	"github.com/mpalmerin/storefront-backend/pkg/db/models"
)

// UserDTO is the transport shape. The password hash never leaves the
// service layer.
type UserDTO struct {
	ID        int64   `json:"id"`
	UserName  string  `json:"user_name"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// RegisterInput holds the data needed to create an account.
type RegisterInput struct {
	UserName  string
	Password  string
	FirstName *string
	LastName  *string
}

// Credentials is a login attempt.
type Credentials struct {
	UserName string
	Password string
}

// LoginResult carries the minted bearer token alongside the account.
type LoginResult struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		UserName:  u.UserName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
