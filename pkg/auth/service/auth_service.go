package service

import (
	"context"

	"agrimitra/entities"
)

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*entities.User, error)
	// Login returns the user whose email and password match. Any mismatch,
	// including an unknown email, is reported as unauthorized.
	Login(ctx context.Context, email, password string) (*entities.User, error)
	Resolve(ctx context.Context, id uint) (*entities.User, error)
}
