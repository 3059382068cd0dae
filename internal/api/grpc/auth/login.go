package auth

import (
	"context"
	"strings"

	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	"github.com/ledgerlane/identity/internal/auth/audit"
	"github.com/ledgerlane/identity/internal/auth/user"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Login authenticates a username and password and issues a session token.
func (s *AuthService) Login(ctx context.Context, in *authv1.LoginRequest) (*authv1.LoginResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "login request is required")
	}
	if s.store == nil {
		return nil, status.Error(codes.Internal, "user store is not configured")
	}
	if s.sessions == nil {
		return nil, status.Error(codes.Internal, "session token manager is not configured")
	}

	if err := s.verifyCaptcha(ctx, in.GetCaptchaToken(), in.GetIpAddress()); err != nil {
		return nil, handleDomainError(err)
	}

	username := strings.ToLower(strings.TrimSpace(in.GetUsername()))
	if username == "" {
		return nil, status.Error(codes.InvalidArgument, "username is required")
	}
	if in.GetPassword() == "" {
		return nil, status.Error(codes.InvalidArgument, "password is required")
	}

	account, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		// Unknown usernames collapse into invalid credentials so the
		// response does not reveal which accounts exist.
		if apperrors.GetCode(err) == apperrors.CodeNotFound {
			return nil, handleDomainError(errInvalidCredentials())
		}
		return nil, handleDomainError(err)
	}

	if account.PasswordHash == "" {
		s.recordAudit(ctx, account.ID, audit.MethodPassword, false, in.GetIpAddress(), in.GetUserAgent(), map[string]string{"reason": "no_password"})
		return nil, handleDomainError(errInvalidCredentials())
	}

	match, err := s.policy.Verify(in.GetPassword(), account.PasswordHash)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "verify password: %v", err)
	}
	if !match {
		s.recordAudit(ctx, account.ID, audit.MethodPassword, false, in.GetIpAddress(), in.GetUserAgent(), nil)
		return nil, handleDomainError(errInvalidCredentials())
	}

	if !account.IsActive {
		s.recordAudit(ctx, account.ID, audit.MethodPassword, false, in.GetIpAddress(), in.GetUserAgent(), map[string]string{"reason": "inactive"})
		return nil, handleDomainError(apperrors.New(apperrors.CodeInactiveAccount, "account is deactivated"))
	}

	signed, expiresAt, err := s.sessions.Issue(account.ID, string(account.Role))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "issue session token: %v", err)
	}

	account = s.stampLastLogin(ctx, account)
	s.recordAudit(ctx, account.ID, audit.MethodPassword, true, in.GetIpAddress(), in.GetUserAgent(), nil)

	return &authv1.LoginResponse{
		User:         userToProto(account),
		SessionToken: signed,
		ExpiresAt:    timestamppb.New(expiresAt),
	}, nil
}

// stampLastLogin records the login time. Failures are logged, not returned:
// the session is already issued.
func (s *AuthService) stampLastLogin(ctx context.Context, account user.User) user.User {
	now := s.nowUTC()
	account.LastLoginAt = &now
	account.UpdatedAt = now
	if err := s.store.UpdateUser(ctx, account); err != nil {
		s.logger.Warn(ctx, "stamp last login failed", "user_id", account.ID, "error", err)
	}
	return account
}

func errInvalidCredentials() error {
	return apperrors.New(apperrors.CodeInvalidCredentials, "invalid username or password")
}
