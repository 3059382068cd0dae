package user

import (
	"errors"
	"testing"
	"time"
)

func TestCreateUserNormalizesInput(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	created, err := CreateUser(CreateUserInput{
		Username: "  Alice  ",
		Email:    "Alice@Example.COM",
	}, func() time.Time { return fixed }, func() (string, error) { return "user-1", nil })
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if created.ID != "user-1" {
		t.Fatalf("id = %q, want %q", created.ID, "user-1")
	}
	if created.Username != "alice" {
		t.Fatalf("username = %q, want %q", created.Username, "alice")
	}
	if created.Email != "alice@example.com" {
		t.Fatalf("email = %q, want %q", created.Email, "alice@example.com")
	}
	if created.Role != RoleUser {
		t.Fatalf("role = %q, want %q", created.Role, RoleUser)
	}
	if !created.IsActive {
		t.Fatal("expected new users to be active")
	}
	if created.IsVerified {
		t.Fatal("expected new users to be unverified")
	}
	if !created.CreatedAt.Equal(fixed) || !created.UpdatedAt.Equal(fixed) {
		t.Fatalf("timestamps = %v/%v, want %v", created.CreatedAt, created.UpdatedAt, fixed)
	}
}

func TestCreateUserRejectsEmptyUsername(t *testing.T) {
	_, err := CreateUser(CreateUserInput{Username: "   ", Email: "a@x.com"}, nil, nil)
	if !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "a.b-c_d", "user2026", "abc"}
	for _, name := range valid {
		if err := ValidateUsername(name); err != nil {
			t.Errorf("ValidateUsername(%q) = %v, want nil", name, err)
		}
	}
	invalid := []string{"ab", "UPPER", "with space", "séb", "x@y", "this-name-is-way-too-long-for-the-limit"}
	for _, name := range invalid {
		if err := ValidateUsername(name); !errors.Is(err, ErrInvalidUsername) {
			t.Errorf("ValidateUsername(%q) = %v, want ErrInvalidUsername", name, err)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail(" Bob@Example.org ")
	if err != nil {
		t.Fatalf("normalize email: %v", err)
	}
	if got != "bob@example.org" {
		t.Fatalf("email = %q, want %q", got, "bob@example.org")
	}

	if _, err := NormalizeEmail("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestHasAuthMethod(t *testing.T) {
	if (User{}).HasAuthMethod() {
		t.Fatal("expected no auth method for empty user")
	}
	if !(User{PasswordHash: "$argon2id$..."}).HasAuthMethod() {
		t.Fatal("expected password hash to count as an auth method")
	}
	if !(User{HasPasskey: true}).HasAuthMethod() {
		t.Fatal("expected passkey to count as an auth method")
	}
}

func TestCreateUserDefaultsRole(t *testing.T) {
	created, err := CreateUser(CreateUserInput{Username: "carol", Email: "c@x.com", Role: RoleAdmin}, nil, nil)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.Role != RoleAdmin {
		t.Fatalf("role = %q, want %q", created.Role, RoleAdmin)
	}
}
