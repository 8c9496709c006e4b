package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/melxagency/rmoneyok/internal/api/metrics"
	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

const verificationTTL = 24 * time.Hour

// ClientService implements customer registration, login, and the email
// verification token lifecycle.
type ClientService struct {
	repo   ports.ClientRepository
	sender ports.VerificationSender
	issuer tokenIssuer
	now    func() time.Time
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, sender ports.VerificationSender, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *ClientService {
	return &ClientService{
		repo:   repo,
		sender: sender,
		issuer: newTokenIssuer(jwtSecret, tokenTTL),
		now:    time.Now,
		logger: logger,
	}
}

// Register persists the client unverified and then dispatches the
// verification email. Email dispatch is fire-and-forget: a delivery failure
// is logged but never rolls back or fails the registration.
func (s *ClientService) Register(ctx context.Context, input ports.RegisterClientInput) (*domain.Client, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	client := &domain.Client{
		FullName:              input.FullName,
		Email:                 input.Email,
		Contact:               input.Contact,
		Username:              input.Username,
		PasswordHash:          hash,
		EmailVerified:         false,
		VerificationToken:     domain.NewOpaqueToken(),
		VerificationExpiresAt: now.Add(verificationTTL),
		CreatedAt:             now,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, err
	}

	s.dispatchVerification(ctx, created.Email, created.FullName, created.VerificationToken)

	s.logger.Info().Str("username", created.Username).Msg("client registered")
	return created, nil
}

// Login authenticates a client. Unverified accounts fail with
// ErrEmailNotVerified, a condition the caller routes to the resend flow;
// every other failure collapses to ErrInvalidCredentials.
func (s *ClientService) Login(ctx context.Context, username, password string) (string, *domain.Client, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	client, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !client.EmailVerified {
		return "", nil, domain.ErrEmailNotVerified
	}

	ok, needsRehash := verifyCredential(client.PasswordHash, password)
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}

	if needsRehash {
		s.rehash(ctx, client, password)
	}

	token, err := s.issuer.clientToken(client)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", client.Username).Msg("client login")
	return token, client, nil
}

func (s *ClientService) rehash(ctx context.Context, client *domain.Client, password string) {
	hash, err := hashPassword(password)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", client.Username).Msg("credential rehash failed")
		return
	}
	if err := s.repo.UpdatePassword(ctx, client.ID, hash); err != nil {
		s.logger.Warn().Err(err).Str("username", client.Username).Msg("credential rehash persist failed")
		return
	}
	client.PasswordHash = hash
}

// VerifyEmail consumes a verification token. The token must match a client
// and still be inside its 24-hour window; success flips the verified flag
// and clears the token so it cannot be replayed.
func (s *ClientService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrTokenInvalid
	}

	client, err := s.repo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return domain.ErrTokenInvalid
		}
		return err
	}

	if s.now().After(client.VerificationExpiresAt) {
		return domain.ErrTokenExpired
	}

	if err := s.repo.MarkVerified(ctx, client.ID); err != nil {
		return err
	}

	s.logger.Info().Str("username", client.Username).Msg("email verified")
	return nil
}

// ResendVerification regenerates the token for an unverified account and
// sends a fresh email. Already-verified accounts are refused without
// touching the token fields.
func (s *ClientService) ResendVerification(ctx context.Context, email string) error {
	client, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if client.EmailVerified {
		return domain.ErrAlreadyVerified
	}

	token := domain.NewOpaqueToken()
	expiresAt := s.now().UTC().Add(verificationTTL)
	if err := s.repo.SetVerificationToken(ctx, client.ID, token, expiresAt); err != nil {
		return err
	}

	if err := s.sender.Send(ctx, client.Email, client.FullName, token); err != nil {
		metrics.VerificationEmailsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.VerificationEmailsTotal.WithLabelValues("ok").Inc()

	s.logger.Info().Str("email", client.Email).Msg("verification email resent")
	return nil
}

func (s *ClientService) dispatchVerification(ctx context.Context, email, fullname, token string) {
	if err := s.sender.Send(ctx, email, fullname, token); err != nil {
		metrics.VerificationEmailsTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Str("email", email).Msg("verification email failed, account created anyway")
		return
	}
	metrics.VerificationEmailsTotal.WithLabelValues("ok").Inc()
}
