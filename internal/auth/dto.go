package auth

import (
	"github.com/solbazaar/solbazaar-backend/internal/identity"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// RegisterInput carries a new account registration. Role selects which
// account table the registration lands in; admin accounts are provisioned
// out-of-band and cannot be created here.
type RegisterInput struct {
	Name     string     `json:"name" validate:"required,min=1,max=120"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8,max=128"`
	Role     enums.Role `json:"role" validate:"required"`
	Company  *string    `json:"company" validate:"omitempty,max=200"`
	Address  *string    `json:"address" validate:"omitempty,max=500"`
	Phone    *string    `json:"phone" validate:"omitempty,max=40"`
}

// LoginInput carries the credentials for any account role.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the authenticated result returned to clients.
type Session struct {
	Token     string             `json:"token"`
	Principal identity.Principal `json:"principal"`
}
