// Package user provides the identity record at the root of the auth domain.
package user

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
	"github.com/ledgerlane/identity/internal/platform/id"
)

var (
	// ErrEmptyUsername indicates a missing username.
	ErrEmptyUsername = apperrors.New(apperrors.CodeUserEmptyUsername, "username is required")
	// ErrInvalidUsername indicates a username that does not match the required format.
	ErrInvalidUsername = apperrors.New(apperrors.CodeInvalidUsername, "username must be 3-32 lowercase alphanumeric, dot, dash, or underscore characters")
	// ErrInvalidEmail indicates an address net/mail cannot parse.
	ErrInvalidEmail = apperrors.New(apperrors.CodeInvalidEmail, "email address is invalid")

	usernamePattern = regexp.MustCompile(`^[a-z0-9_.\-]{3,32}$`)
)

// Role classifies a user for coarse authorization decisions downstream.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an authenticated identity record.
//
// PasswordHash is empty for passkey-only accounts. HasPasskey is a derived
// cache over active passkey credentials; the storage layer keeps it
// consistent inside the same transaction that mutates credentials.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsVerified   bool
	IsActive     bool
	HasPasskey   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// HasAuthMethod reports whether the record satisfies the invariant that a
// user always retains at least one way to authenticate.
func (u User) HasAuthMethod() bool {
	return u.PasswordHash != "" || u.HasPasskey
}

// CreateUserInput describes the metadata needed to create a user.
type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
	Role         Role
}

// ValidateUsername enforces canonical username constraints shared by login,
// registration, and cross-service identity display.
func ValidateUsername(s string) error {
	if !usernamePattern.MatchString(s) {
		return ErrInvalidUsername
	}
	return nil
}

// NormalizeEmail parses and lowercases an email address.
func NormalizeEmail(s string) (string, error) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(parsed.Address), nil
}

// CreateUser creates a durable user identity from validated input.
//
// This is the canonical point where untrusted registration data becomes a
// stable identity used by every other auth flow.
func CreateUser(input CreateUserInput, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateUserInput(input)
	if err != nil {
		return User{}, err
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	createdAt := now().UTC()
	return User{
		ID:           userID,
		Username:     normalized.Username,
		Email:        normalized.Email,
		PasswordHash: normalized.PasswordHash,
		Role:         normalized.Role,
		IsActive:     true,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// NormalizeCreateUserInput trims and normalizes input before validation.
func NormalizeCreateUserInput(input CreateUserInput) (CreateUserInput, error) {
	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	if input.Username == "" {
		return CreateUserInput{}, ErrEmptyUsername
	}
	if err := ValidateUsername(input.Username); err != nil {
		return CreateUserInput{}, err
	}
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return CreateUserInput{}, err
	}
	input.Email = email
	if input.Role == "" {
		input.Role = RoleUser
	}
	return input, nil
}
