package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"hri-companion/internal/pkg/jwtutil"
	"hri-companion/internal/repository"
	"hri-companion/internal/store/memstore"
)

func newAuthService() *AuthService {
	userRepo := repository.NewUserRepository(memstore.New())
	return NewAuthService(userRepo, "test-secret", time.Hour)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc := newAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Email:    " Ana@Example.COM ",
		Password: "strongpass",
		FullName: "Ana Parent",
		Role:     "parent",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.User.Email != "ana@example.com" {
		t.Errorf("email = %q, want trimmed lower-cased", result.User.Email)
	}
	if result.User.ID == "" {
		t.Error("user id should be set")
	}
	if result.User.PasswordHash == "strongpass" {
		t.Error("password must not be stored in plain text")
	}

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	if err != nil {
		t.Fatalf("register token does not parse: %v", err)
	}
	if claims.Subject != result.User.ID {
		t.Errorf("token subject = %q, want %q", claims.Subject, result.User.ID)
	}
	if claims.Role != "parent" {
		t.Errorf("token role = %q, want parent", claims.Role)
	}

	login, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "strongpass"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Errorf("login user id = %q, want %q", login.User.ID, result.User.ID)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newAuthService()
	ctx := context.Background()

	input := RegisterInput{Email: "ana@example.com", Password: "strongpass", FullName: "Ana", Role: "parent"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	// Same address in different casing is still the same account.
	input.Email = "ANA@example.com"
	_, err := svc.Register(ctx, input)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newAuthService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"empty email", RegisterInput{Email: "", Password: "strongpass", FullName: "Ana", Role: "parent"}},
		{"short password", RegisterInput{Email: "a@example.com", Password: "short", FullName: "Ana", Role: "parent"}},
		{"blank full name", RegisterInput{Email: "a@example.com", Password: "strongpass", FullName: "  ", Role: "parent"}},
		{"unknown role", RegisterInput{Email: "a@example.com", Password: "strongpass", FullName: "Ana", Role: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(ctx, tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := newAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Email: "ana@example.com", Password: "strongpass", FullName: "Ana", Role: "parent",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "wrongwrong"})
	if !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newAuthService()

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever1"})
	if !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestAuthService_GetUserByID(t *testing.T) {
	t.Parallel()

	svc := newAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Email: "ana@example.com", Password: "strongpass", FullName: "Ana", Role: "therapist",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := svc.GetUserByID(ctx, result.User.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if user == nil || user.Role != "therapist" {
		t.Errorf("got %+v, want registered therapist", user)
	}

	if _, err := svc.GetUserByID(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty id, got %v", err)
	}
}
