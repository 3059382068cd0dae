package auth

import (
	"context"
	"fmt"
	"strings"

	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	"github.com/ledgerlane/identity/internal/auth/storage"
	"github.com/ledgerlane/identity/internal/auth/user"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
	"github.com/ledgerlane/identity/internal/platform/grpc/pagination"
	"github.com/ledgerlane/identity/internal/platform/id"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultListUsersPageSize = 10
	maxListUsersPageSize     = 50
)

// Register creates an account and queues the activation email. The password
// is optional; without one the account can only authenticate with passkeys.
func (s *AuthService) Register(ctx context.Context, in *authv1.RegisterRequest) (*authv1.RegisterResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "register request is required")
	}
	if s.store == nil || s.tokenStore == nil {
		return nil, status.Error(codes.Internal, "storage is not configured")
	}

	if err := s.verifyCaptcha(ctx, in.GetCaptchaToken(), ""); err != nil {
		return nil, handleDomainError(err)
	}

	// The password is optional: an account opened without one is
	// passkey-only until a reset flow sets a hash.
	var hash string
	if in.GetPassword() != "" {
		var err error
		hash, err = s.policy.Hash(in.GetPassword())
		if err != nil {
			return nil, handleDomainError(err)
		}
	}

	created, err := user.CreateUser(user.CreateUserInput{
		Username:     in.GetUsername(),
		Email:        in.GetEmail(),
		PasswordHash: hash,
	}, s.clock, s.idGenerator)
	if err != nil {
		return nil, handleDomainError(err)
	}

	if hash == "" {
		if err := s.store.CreateUser(ctx, created); err != nil {
			return nil, handleDomainError(err)
		}
	} else {
		// Seed the rotation history in the same transaction so the
		// initial password participates in reuse checks.
		historyID, err := s.idGenerator()
		if err != nil {
			return nil, status.Errorf(codes.Internal, "generate history id: %v", err)
		}
		if err := s.store.CreateUserWithPassword(ctx, created, storage.PasswordHistoryEntry{
			ID:           historyID,
			UserID:       created.ID,
			PasswordHash: hash,
			CreatedAt:    created.CreatedAt,
		}); err != nil {
			return nil, handleDomainError(err)
		}
	}

	if err := s.issueSingleUseToken(ctx, created, storage.TokenTypeActivation); err != nil {
		return nil, handleDomainError(err)
	}

	return &authv1.RegisterResponse{User: userToProto(created)}, nil
}

// ActivateAccount consumes an activation token and marks the account verified.
func (s *AuthService) ActivateAccount(ctx context.Context, in *authv1.ActivateAccountRequest) (*authv1.ActivateAccountResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "activate account request is required")
	}
	if s.store == nil || s.tokenStore == nil {
		return nil, status.Error(codes.Internal, "storage is not configured")
	}

	raw := strings.TrimSpace(in.GetToken())
	if raw == "" {
		return nil, status.Error(codes.InvalidArgument, "token is required")
	}

	consumed, err := s.tokenStore.ConsumeActivationToken(ctx, raw, s.nowUTC())
	if err != nil {
		return nil, handleDomainError(tokenLookupError(err))
	}

	activated, err := s.store.GetUser(ctx, consumed.UserID)
	if err != nil {
		return nil, handleDomainError(err)
	}

	return &authv1.ActivateAccountResponse{User: userToProto(activated)}, nil
}

// GetUser resolves a user ID to an identity record for cross-service lookups.
func (s *AuthService) GetUser(ctx context.Context, in *authv1.GetUserRequest) (*authv1.GetUserResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get user request is required")
	}
	if s.store == nil {
		return nil, status.Error(codes.Internal, "user store is not configured")
	}

	userID := strings.TrimSpace(in.GetUserId())
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user id is required")
	}

	found, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, handleDomainError(err)
	}

	return &authv1.GetUserResponse{User: userToProto(found)}, nil
}

// ListUsers returns a page of users for operator-facing views.
func (s *AuthService) ListUsers(ctx context.Context, in *authv1.ListUsersRequest) (*authv1.ListUsersResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list users request is required")
	}
	if s.store == nil {
		return nil, status.Error(codes.Internal, "user store is not configured")
	}

	pageSize := pagination.ClampPageSize(in.GetPageSize(), pagination.PageSizeConfig{
		Default: defaultListUsersPageSize,
		Max:     maxListUsersPageSize,
	})

	page, err := s.store.ListUsers(ctx, pageSize, in.GetPageToken())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list users: %v", err)
	}

	response := &authv1.ListUsersResponse{NextPageToken: page.NextPageToken}
	if len(page.Users) == 0 {
		return response, nil
	}

	response.Users = make([]*authv1.User, 0, len(page.Users))
	for _, u := range page.Users {
		response.Users = append(response.Users, userToProto(u))
	}

	return response, nil
}

// issueSingleUseToken mints an opaque token and queues its delivery email in
// one storage transaction.
func (s *AuthService) issueSingleUseToken(ctx context.Context, target user.User, tokenType storage.TokenType) error {
	tokenID, err := s.idGenerator()
	if err != nil {
		return fmt.Errorf("generate token id: %w", err)
	}
	emailID, err := s.idGenerator()
	if err != nil {
		return fmt.Errorf("generate email id: %w", err)
	}
	raw, err := id.NewToken(s.passwordConfig.ResetTokenSize)
	if err != nil {
		return fmt.Errorf("generate token value: %w", err)
	}

	now := s.nowUTC()
	ttl := activationTokenTTL
	subject, body := activationEmail(target.Username, raw)
	if tokenType == storage.TokenTypePasswordReset {
		ttl = resetTokenTTL
		subject, body = resetEmail(target.Username, raw)
	}

	return s.tokenStore.PutSingleUseTokenWithEmail(ctx,
		storage.SingleUseToken{
			ID:        tokenID,
			UserID:    target.ID,
			Token:     raw,
			TokenType: tokenType,
			ExpiresAt: now.Add(ttl),
			CreatedAt: now,
		},
		storage.EmailOutboxMessage{
			ID:        emailID,
			Recipient: target.Email,
			Subject:   subject,
			Body:      body,
			CreatedAt: now,
			UpdatedAt: now,
		},
	)
}

// tokenLookupError upgrades a bare not-found from the token store into the
// single-use token taxonomy.
func tokenLookupError(err error) error {
	if apperrors.GetCode(err) == apperrors.CodeNotFound {
		return apperrors.New(apperrors.CodeSingleUseTokenNotFound, "token not found or already used")
	}
	return err
}
