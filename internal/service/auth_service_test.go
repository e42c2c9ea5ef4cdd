package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/coldpilot/coldpilot-backend/internal/errors"
	"github.com/coldpilot/coldpilot-backend/internal/model"
	"github.com/coldpilot/coldpilot-backend/internal/service"
)

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, nextID: 1}
}

func (m *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = m.nextID
	m.nextID++
	m.users[u.Email] = u
	return nil
}

func (m *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.users[email], nil
}

func (m *fakeUserRepo) GetByID(ctx context.Context, id int) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthService() *service.AuthService {
	return &service.AuthService{
		UserRepo:      newFakeUserRepo(),
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
	}
}

func TestSignupIssuesValidToken(t *testing.T) {
	svc := newAuthService()

	result, err := svc.Signup(context.Background(), "Alice@Example.com", "password123", "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("email not normalized, got %q", result.User.Email)
	}

	token, err := jwt.Parse(result.Token, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not validate: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if int(claims["user_id"].(float64)) != result.User.ID {
		t.Errorf("token user_id mismatch")
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService()

	if _, err := svc.Signup(context.Background(), "a@b.com", "password123", ""); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, err := svc.Signup(context.Background(), "a@b.com", "password456", "")
	var invalid *appErrors.ErrInvalidInput
	if !errors.As(err, &invalid) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Signup(context.Background(), "a@b.com", "short", "")
	var invalid *appErrors.ErrInvalidInput
	if !errors.As(err, &invalid) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSigninRoundTrip(t *testing.T) {
	svc := newAuthService()

	if _, err := svc.Signup(context.Background(), "a@b.com", "password123", ""); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	result, err := svc.Signin(context.Background(), "a@b.com", "password123")
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
}

func TestSigninWrongPassword(t *testing.T) {
	svc := newAuthService()

	if _, err := svc.Signup(context.Background(), "a@b.com", "password123", ""); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := svc.Signin(context.Background(), "a@b.com", "nope-nope"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSigninUnknownEmail(t *testing.T) {
	svc := newAuthService()

	if _, err := svc.Signin(context.Background(), "ghost@b.com", "whatever1"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
