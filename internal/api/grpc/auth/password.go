package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	"github.com/ledgerlane/identity/internal/auth/password"
	"github.com/ledgerlane/identity/internal/auth/storage"
	"github.com/ledgerlane/identity/internal/auth/user"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	activationTokenTTL = 24 * time.Hour
	resetTokenTTL      = time.Hour
)

// ChangePassword rotates a password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, in *authv1.ChangePasswordRequest) (*authv1.ChangePasswordResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "change password request is required")
	}
	if s.store == nil {
		return nil, status.Error(codes.Internal, "user store is not configured")
	}

	userID := strings.TrimSpace(in.GetUserId())
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user id is required")
	}
	if in.GetNewPassword() == "" {
		return nil, status.Error(codes.InvalidArgument, "new password is required")
	}

	account, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, handleDomainError(err)
	}
	if account.PasswordHash == "" {
		return nil, handleDomainError(apperrors.New(apperrors.CodeInvalidCredentials, "account has no password"))
	}

	match, err := s.policy.Verify(in.GetCurrentPassword(), account.PasswordHash)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "verify password: %v", err)
	}
	if !match {
		return nil, handleDomainError(errInvalidCredentials())
	}

	entry, err := s.prepareRotation(ctx, account, in.GetNewPassword())
	if err != nil {
		return nil, handleDomainError(err)
	}
	if err := s.store.UpdatePassword(ctx, account.ID, entry); err != nil {
		return nil, handleDomainError(err)
	}

	return &authv1.ChangePasswordResponse{}, nil
}

// ForgotPassword queues a reset email. It succeeds whether or not the email
// maps to an account, so the endpoint cannot be used to probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, in *authv1.ForgotPasswordRequest) (*authv1.ForgotPasswordResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "forgot password request is required")
	}
	if s.store == nil || s.tokenStore == nil {
		return nil, status.Error(codes.Internal, "storage is not configured")
	}

	if err := s.verifyCaptcha(ctx, in.GetCaptchaToken(), ""); err != nil {
		return nil, handleDomainError(err)
	}

	email, err := user.NormalizeEmail(in.GetEmail())
	if err != nil {
		return nil, handleDomainError(err)
	}

	account, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.CodeNotFound {
			s.logger.Info(ctx, "password reset requested for unknown email")
			return &authv1.ForgotPasswordResponse{}, nil
		}
		return nil, handleDomainError(err)
	}

	if err := s.issueSingleUseToken(ctx, account, storage.TokenTypePasswordReset); err != nil {
		return nil, handleDomainError(err)
	}
	return &authv1.ForgotPasswordResponse{}, nil
}

// ResetPassword consumes a reset token and applies the new password in one
// storage transaction.
func (s *AuthService) ResetPassword(ctx context.Context, in *authv1.ResetPasswordRequest) (*authv1.ResetPasswordResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "reset password request is required")
	}
	if s.store == nil || s.tokenStore == nil {
		return nil, status.Error(codes.Internal, "storage is not configured")
	}

	raw := strings.TrimSpace(in.GetToken())
	if raw == "" {
		return nil, status.Error(codes.InvalidArgument, "token is required")
	}
	if in.GetNewPassword() == "" {
		return nil, status.Error(codes.InvalidArgument, "new password is required")
	}

	// Peek first so policy violations surface before the token is spent.
	pending, err := s.tokenStore.GetSingleUseToken(ctx, raw, storage.TokenTypePasswordReset)
	if err != nil {
		return nil, handleDomainError(tokenLookupError(err))
	}
	if !pending.ExpiresAt.After(s.nowUTC()) {
		return nil, handleDomainError(apperrors.New(apperrors.CodeSingleUseTokenExpired, "token has expired"))
	}

	account, err := s.store.GetUser(ctx, pending.UserID)
	if err != nil {
		return nil, handleDomainError(err)
	}

	entry, err := s.prepareRotation(ctx, account, in.GetNewPassword())
	if err != nil {
		return nil, handleDomainError(err)
	}

	if _, err := s.tokenStore.ConsumeResetTokenWithPassword(ctx, raw, s.nowUTC(), entry); err != nil {
		return nil, handleDomainError(tokenLookupError(err))
	}

	return &authv1.ResetPasswordResponse{}, nil
}

// prepareRotation runs the password policy (strength and reuse) and returns
// the history entry carrying the new hash.
func (s *AuthService) prepareRotation(ctx context.Context, account user.User, candidate string) (storage.PasswordHistoryEntry, error) {
	// The current hash may predate the history window; check it explicitly.
	if account.PasswordHash != "" {
		match, err := s.policy.Verify(candidate, account.PasswordHash)
		if err != nil {
			return storage.PasswordHistoryEntry{}, fmt.Errorf("verify against current password: %w", err)
		}
		if match {
			return storage.PasswordHistoryEntry{}, password.ErrPasswordReused
		}
	}

	if err := s.policy.CheckReuse(ctx, s.store, account.ID, candidate); err != nil {
		return storage.PasswordHistoryEntry{}, err
	}

	hash, err := s.policy.Hash(candidate)
	if err != nil {
		return storage.PasswordHistoryEntry{}, err
	}
	entryID, err := s.idGenerator()
	if err != nil {
		return storage.PasswordHistoryEntry{}, fmt.Errorf("generate history id: %w", err)
	}
	return storage.PasswordHistoryEntry{
		ID:           entryID,
		UserID:       account.ID,
		PasswordHash: hash,
		CreatedAt:    s.nowUTC(),
	}, nil
}

func activationEmail(username, rawToken string) (subject, body string) {
	subject = "Activate your account"
	body = "Hello " + username + ",\n\nUse this token to activate your account: " + rawToken + "\n\nThe token expires in 24 hours."
	return subject, body
}

func resetEmail(username, rawToken string) (subject, body string) {
	subject = "Reset your password"
	body = "Hello " + username + ",\n\nUse this token to reset your password: " + rawToken + "\n\nThe token expires in 1 hour. If you did not request this, ignore this message."
	return subject, body
}
