package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

// AuthService implements operator login and operator account administration.
type AuthService struct {
	repo   ports.UserRepository
	issuer tokenIssuer
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		issuer: newTokenIssuer(jwtSecret, tokenTTL),
		logger: logger,
	}
}

// Login verifies an operator's credentials and issues a session token.
// A missing account and a wrong password both come back as
// ErrInvalidCredentials so usernames cannot be probed. A match against a
// legacy plaintext credential triggers the one-time rehash.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	ok, needsRehash := verifyCredential(user.PasswordHash, password)
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}

	if needsRehash {
		s.rehash(ctx, user, password)
	}

	token, err := s.issuer.operatorToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("operator login")
	return token, user, nil
}

// rehash migrates a plaintext credential to bcrypt after a successful login.
// Failure is logged only: the login already succeeded.
func (s *AuthService) rehash(ctx context.Context, user *domain.User, password string) {
	hash, err := hashPassword(password)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", user.Username).Msg("credential rehash failed")
		return
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		s.logger.Warn().Err(err).Str("username", user.Username).Msg("credential rehash persist failed")
		return
	}
	user.PasswordHash = hash
}

func (s *AuthService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Role == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		FullName:     input.FullName,
		PasswordHash: hash,
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("operator created")
	return created, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser mutates an operator. The password is re-hashed only when a
// non-blank value was provided.
func (s *AuthService) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	return s.repo.Update(ctx, user)
}

func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
