package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

type stubClientRepo struct {
	clients map[string]*domain.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func cloneClient(c *domain.Client) *domain.Client {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubClientRepo) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.Username == client.Username || c.Email == client.Email {
			return nil, domain.ErrClientExists
		}
	}
	copy := cloneClient(client)
	if copy.ID == "" {
		copy.ID = "client_" + client.Username
	}
	r.clients[copy.ID] = cloneClient(copy)
	return cloneClient(copy), nil
}

func (r *stubClientRepo) FindByUsername(_ context.Context, username string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.Username == username {
			return cloneClient(c), nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.Email == email {
			return cloneClient(c), nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByVerificationToken(_ context.Context, token string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.VerificationToken != "" && c.VerificationToken == token {
			return cloneClient(c), nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) MarkVerified(_ context.Context, id string) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.EmailVerified = true
	c.VerificationToken = ""
	c.VerificationExpiresAt = time.Time{}
	return nil
}

func (r *stubClientRepo) SetVerificationToken(_ context.Context, id, token string, expiresAt time.Time) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.VerificationToken = token
	c.VerificationExpiresAt = expiresAt
	return nil
}

func (r *stubClientRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.PasswordHash = passwordHash
	return nil
}

type stubVerificationSender struct {
	sent []string // tokens, in send order
	err  error
}

func (s *stubVerificationSender) Send(_ context.Context, _, _, token string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, token)
	return nil
}

func newClientService(repo *stubClientRepo, sender *stubVerificationSender) *ClientService {
	return NewClientService(repo, sender, "secret", time.Hour, zerolog.Nop())
}

func registerInput() ports.RegisterClientInput {
	return ports.RegisterClientInput{
		FullName: "Gina Cliente",
		Email:    "gina@example.com",
		Contact:  "+1 305 555 0102",
		Username: "gina",
		Password: "pass-12345",
	}
}

func TestClientService_Register_StartsUnverifiedAndSendsToken(t *testing.T) {
	repo := newStubClientRepo()
	sender := &stubVerificationSender{}
	svc := newClientService(repo, sender)

	client, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if client.EmailVerified {
		t.Fatalf("new account verified on creation")
	}
	if client.VerificationToken == "" {
		t.Fatalf("no verification token issued")
	}
	if len(sender.sent) != 1 || sender.sent[0] != client.VerificationToken {
		t.Fatalf("sent tokens = %v, want the issued token", sender.sent)
	}
	if window := time.Until(client.VerificationExpiresAt); window < 23*time.Hour || window > 25*time.Hour {
		t.Fatalf("verification window = %v, want ~24h", window)
	}
}

func TestClientService_Register_SendFailureDoesNotFail(t *testing.T) {
	repo := newStubClientRepo()
	sender := &stubVerificationSender{err: errors.New("smtp down")}
	svc := newClientService(repo, sender)

	client, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed on email error: %v", err)
	}
	if _, ok := repo.clients[client.ID]; !ok {
		t.Fatalf("account not persisted")
	}
}

func TestClientService_Login_UnverifiedIsDistinct(t *testing.T) {
	repo := newStubClientRepo()
	sender := &stubVerificationSender{}
	svc := newClientService(repo, sender)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "gina", "pass-12345"); !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Fatalf("unverified login: expected ErrEmailNotVerified, got %v", err)
	}
}

func TestClientService_VerifyThenLogin(t *testing.T) {
	repo := newStubClientRepo()
	sender := &stubVerificationSender{}
	svc := newClientService(repo, sender)

	client, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.VerifyEmail(context.Background(), client.VerificationToken); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	stored := repo.clients[client.ID]
	if !stored.EmailVerified {
		t.Fatalf("account still unverified after token use")
	}
	if stored.VerificationToken != "" {
		t.Fatalf("token not cleared, could be replayed")
	}

	// Replay of the consumed token is an invalid token, not a second verify.
	if err := svc.VerifyEmail(context.Background(), client.VerificationToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("token replay: expected ErrTokenInvalid, got %v", err)
	}

	token, logged, err := svc.Login(context.Background(), "gina", "pass-12345")
	if err != nil {
		t.Fatalf("login after verify failed: %v", err)
	}
	if logged.Username != "gina" {
		t.Fatalf("unexpected client: %+v", logged)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["kind"] != domain.IdentityClient {
		t.Errorf("kind claim = %v, want %s", claims["kind"], domain.IdentityClient)
	}
}

func TestClientService_VerifyEmail_Expired(t *testing.T) {
	repo := newStubClientRepo()
	sender := &stubVerificationSender{}
	svc := newClientService(repo, sender)

	client, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if err := svc.VerifyEmail(context.Background(), client.VerificationToken); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expired token: expected ErrTokenExpired, got %v", err)
	}
	if repo.clients[client.ID].EmailVerified {
		t.Fatalf("account verified with an expired token")
	}
}

func TestClientService_VerifyEmail_UnknownToken(t *testing.T) {
	svc := newClientService(newStubClientRepo(), &stubVerificationSender{})

	if err := svc.VerifyEmail(context.Background(), "nope"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("unknown token: expected ErrTokenInvalid, got %v", err)
	}
	if err := svc.VerifyEmail(context.Background(), ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("empty token: expected ErrTokenInvalid, got %v", err)
	}
}

func TestClientService_ResendVerification_RotatesToken(t *testing.T) {
	repo := newStubClientRepo()
	sender := &stubVerificationSender{}
	svc := newClientService(repo, sender)

	client, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	first := client.VerificationToken

	if err := svc.ResendVerification(context.Background(), client.Email); err != nil {
		t.Fatalf("resend failed: %v", err)
	}

	second := repo.clients[client.ID].VerificationToken
	if second == "" || second == first {
		t.Fatalf("token not rotated: first %q second %q", first, second)
	}

	// The first token is dead once a replacement exists.
	if err := svc.VerifyEmail(context.Background(), first); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("stale token: expected ErrTokenInvalid, got %v", err)
	}
	if err := svc.VerifyEmail(context.Background(), second); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}
}

func TestClientService_ResendVerification_RefusedWhenVerified(t *testing.T) {
	repo := newStubClientRepo()
	sender := &stubVerificationSender{}
	svc := newClientService(repo, sender)

	client, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.VerifyEmail(context.Background(), client.VerificationToken); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	sends := len(sender.sent)
	if err := svc.ResendVerification(context.Background(), client.Email); !errors.Is(err, domain.ErrAlreadyVerified) {
		t.Fatalf("resend on verified: expected ErrAlreadyVerified, got %v", err)
	}
	if len(sender.sent) != sends {
		t.Fatalf("email sent despite refusal")
	}
}
