package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "user_" + user.Username
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func seedOperator(t *testing.T, repo *stubUserRepo, username, password, role string, hashed bool) *domain.User {
	t.Helper()
	credential := password
	if hashed {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("hashing seed password: %v", err)
		}
		credential = string(hash)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		FullName:     "Seed " + username,
		PasswordHash: credential,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seeding operator: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedOperator(t, repo, "carol", "s3cret-pass", "admin", true)
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	token, user, err := svc.Login(context.Background(), "carol", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["kind"] != domain.IdentityOperator {
		t.Errorf("kind claim = %v, want %s", claims["kind"], domain.IdentityOperator)
	}
	if claims["role"] != "admin" {
		t.Errorf("role claim = %v, want admin", claims["role"])
	}
}

func TestAuthService_Login_LegacyPlaintextRehash(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedOperator(t, repo, "legacy", "oldpassword", "operator", false)
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "legacy", "oldpassword"); err != nil {
		t.Fatalf("plaintext login failed: %v", err)
	}

	stored := repo.users[seeded.ID].PasswordHash
	if stored == "oldpassword" {
		t.Fatalf("credential was not rehashed")
	}
	if !strings.HasPrefix(stored, "$2") {
		t.Fatalf("stored credential is not bcrypt: %q", stored)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("oldpassword")); err != nil {
		t.Fatalf("rehashed credential does not match: %v", err)
	}

	// Second login goes through the bcrypt path.
	if _, _, err := svc.Login(context.Background(), "legacy", "oldpassword"); err != nil {
		t.Fatalf("login after rehash failed: %v", err)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	seedOperator(t, repo, "dave", "goodpass", "operator", true)
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown usernames are indistinguishable from wrong passwords.
	if _, _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("empty input: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CreateUser_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "erin",
		FullName: "Erin Ops",
		Password: "plaintext-in",
		Role:     "operator",
	})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	stored := repo.users[user.ID].PasswordHash
	if stored == "plaintext-in" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("plaintext-in")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_UpdateUser_BlankPasswordKeepsHash(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedOperator(t, repo, "frank", "keep-this", "operator", true)
	before := repo.users[seeded.ID].PasswordHash
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	updated, err := svc.UpdateUser(context.Background(), ports.UpdateUserInput{
		ID:       seeded.ID,
		Username: "frank",
		FullName: "Frank Renamed",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FullName != "Frank Renamed" || updated.Role != "admin" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if repo.users[seeded.ID].PasswordHash != before {
		t.Fatalf("credential changed despite blank password")
	}
}
