package serviceImp_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"agrimitra/database"
	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/auth/repositoryImp"
	"agrimitra/pkg/auth/service"
	"agrimitra/pkg/auth/serviceImp"
)

func setup(t *testing.T) service.AuthService {
	t.Helper()
	db := database.OpenTest(t)
	return serviceImp.NewAuthService(repositoryImp.New(db), zerolog.Nop(), serviceImp.WithBcryptCost(bcrypt.MinCost))
}

func TestSignupAndLogin(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, service.SignupInput{Name: " Ravi ", Email: " Ravi@Example.COM ", Password: "s3cret", Role: "farmer"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Ravi", u.Name)
	assert.Equal(t, "ravi@example.com", u.Email)
	assert.Equal(t, entities.RoleFarmer, u.Role)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	got, err := svc.Login(ctx, "RAVI@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = svc.Resolve(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", got.Email)
}

func TestSignupValidation(t *testing.T) {
	svc := setup(t)
	tests := []struct {
		name string
		in   service.SignupInput
	}{
		{"missing name", service.SignupInput{Email: "a@b.c", Password: "p", Role: "buyer"}},
		{"missing email", service.SignupInput{Name: "a", Password: "p", Role: "buyer"}},
		{"missing password", service.SignupInput{Name: "a", Email: "a@b.c", Role: "buyer"}},
		{"missing role", service.SignupInput{Name: "a", Email: "a@b.c", Password: "p"}},
		{"unknown role", service.SignupInput{Name: "a", Email: "a@b.c", Password: "p", Role: "admin"}},
		{"password too long", service.SignupInput{Name: "a", Email: "a@b.c", Password: strings.Repeat("x", 80), Role: "buyer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	_, err := svc.Signup(ctx, service.SignupInput{Name: "Meena", Email: "meena@example.com", Password: "p", Role: "buyer"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, service.SignupInput{Name: "Other", Email: "MEENA@example.com", Password: "q", Role: "farmer"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLoginFailures(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	_, err := svc.Signup(ctx, service.SignupInput{Name: "Meena", Email: "meena@example.com", Password: "right", Role: "buyer"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "meena@example.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = svc.Login(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = svc.Login(ctx, "", "right")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestResolveUnknown(t *testing.T) {
	svc := setup(t)
	_, err := svc.Resolve(context.Background(), 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
