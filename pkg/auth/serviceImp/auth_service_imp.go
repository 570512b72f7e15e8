package serviceImp

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	repo "agrimitra/pkg/auth/repository"
	"agrimitra/pkg/auth/service"
)

type Option func(*authSvc)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *authSvc) { s.cost = cost }
}

type authSvc struct {
	r    repo.UserRepository
	log  zerolog.Logger
	cost int
}

func NewAuthService(r repo.UserRepository, log zerolog.Logger, opts ...Option) service.AuthService {
	s := &authSvc{r: r, log: log.With().Str("module", "auth").Logger(), cost: bcrypt.DefaultCost}
	for _, o := range opts {
		o(s)
	}
	return s
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *authSvc) Signup(ctx context.Context, in service.SignupInput) (*entities.User, error) {
	u := &entities.User{
		Name:  strings.TrimSpace(in.Name),
		Email: normEmail(in.Email),
		Role:  entities.Role(strings.TrimSpace(in.Role)),
	}
	if u.Name == "" || u.Email == "" || in.Password == "" || u.Role == "" {
		return nil, apperr.Validation("name, email, password and role are required")
	}
	if !u.Role.Valid() {
		return nil, apperr.Validation("role must be farmer or buyer, got %q", u.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperr.Validation("password too long")
		}
		return nil, err
	}
	u.PasswordHash = string(hash)

	if err := s.r.Create(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, err
	}
	s.log.Info().Uint("user_id", u.ID).Str("role", string(u.Role)).Msg("user signed up")
	return u, nil
}

func (s *authSvc) Login(ctx context.Context, email, password string) (*entities.User, error) {
	email = normEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password required")
	}
	u, err := s.r.FindByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Uint("user_id", u.ID).Msg("login refused")
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return u, nil
}

func (s *authSvc) Resolve(ctx context.Context, id uint) (*entities.User, error) {
	if id == 0 {
		return nil, apperr.Validation("user id is required")
	}
	return s.r.FindByID(ctx, id)
}
