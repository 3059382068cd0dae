// Package auth implements the auth.v1 gRPC services.
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	"github.com/ledgerlane/identity/internal/auth/audit"
	"github.com/ledgerlane/identity/internal/auth/captcha"
	"github.com/ledgerlane/identity/internal/auth/passkey"
	"github.com/ledgerlane/identity/internal/auth/password"
	"github.com/ledgerlane/identity/internal/auth/storage"
	"github.com/ledgerlane/identity/internal/auth/token"
	"github.com/ledgerlane/identity/internal/auth/user"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
	"github.com/ledgerlane/identity/internal/platform/id"
	"github.com/ledgerlane/identity/internal/platform/logging"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// AuthService implements the auth.v1.AuthService gRPC API.
//
// It is the stable surface other services and tooling call to perform
// identity actions without directly touching storage details.
type AuthService struct {
	authv1.UnimplementedAuthServiceServer
	store               storage.UserStore
	passkeyStore        storage.PasskeyStore
	tokenStore          storage.TokenStore
	auditor             *audit.Recorder
	policy              *password.Policy
	passwordConfig      password.Config
	sessions            *token.Manager
	captcha             captcha.Verifier
	logger              logging.Logger
	passkeyConfig       passkey.Config
	passkeyWebAuthn     passkeyProvider
	passkeyInitErr      error
	passkeyParser       passkeyParser
	clock               func() time.Time
	idGenerator         func() (string, error)
	ceremonyIDGenerator func() (string, error)
}

// Config carries the collaborators AuthService needs.
type Config struct {
	Store        storage.UserStore
	PasskeyStore storage.PasskeyStore
	TokenStore   storage.TokenStore
	Sessions     *token.Manager
	Logger       logging.Logger
}

// NewAuthService builds a service with defaults for the auth package.
//
// Environment-driven configuration (password policy, captcha, WebAuthn
// relying party) is assembled here so transports can treat this as the
// canonical identity entrypoint.
func NewAuthService(cfg Config) *AuthService {
	passkeyCfg := passkey.LoadConfigFromEnv()
	passwordCfg := password.LoadConfigFromEnv()
	webAuthn, err := webauthn.New(&webauthn.Config{
		RPDisplayName: passkeyCfg.RPDisplayName,
		RPID:          passkeyCfg.RPID,
		RPOrigins:     passkeyCfg.RPOrigins,
	})

	hasher, hasherErr := password.NewHasher(passwordCfg.Params())
	if hasherErr != nil {
		hasher, _ = password.NewHasher(password.DefaultParams())
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	var auditor *audit.Recorder
	if auditStore, ok := cfg.Store.(storage.AuditStore); ok {
		auditor = audit.NewRecorder(auditStore, logger)
	}

	return &AuthService{
		store:               cfg.Store,
		passkeyStore:        cfg.PasskeyStore,
		tokenStore:          cfg.TokenStore,
		auditor:             auditor,
		policy:              password.NewPolicy(hasher, passwordCfg.HistoryWindow),
		passwordConfig:      passwordCfg,
		sessions:            cfg.Sessions,
		captcha:             captcha.NewFromConfig(captcha.LoadConfigFromEnv(), http.DefaultClient),
		logger:              logger,
		passkeyConfig:       passkeyCfg,
		passkeyWebAuthn:     webAuthn,
		passkeyInitErr:      err,
		passkeyParser:       defaultPasskeyParser{},
		clock:               time.Now,
		idGenerator:         id.NewID,
		ceremonyIDGenerator: id.NewID,
	}
}

func (s *AuthService) nowUTC() time.Time {
	if s == nil || s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

// verifyCaptcha gates the human-facing entrypoints. A missing verifier
// allows everything, matching the unconfigured captcha default.
func (s *AuthService) verifyCaptcha(ctx context.Context, response, remoteIP string) error {
	if s.captcha == nil {
		return nil
	}
	ok, err := s.captcha.Verify(ctx, response, remoteIP)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUnavailable, "captcha verification unavailable", err)
	}
	if !ok {
		return apperrors.New(apperrors.CodeInvalidCredentials, "captcha verification failed")
	}
	return nil
}

func (s *AuthService) recordAudit(ctx context.Context, userID string, method audit.Method, success bool, ip, userAgent string, metadata map[string]string) {
	if s.auditor == nil {
		return
	}
	s.auditor.Record(ctx, userID, method, success, ip, userAgent, metadata)
}

func userToProto(u user.User) *authv1.User {
	result := &authv1.User{
		Id:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		IsActive:   u.IsActive,
		HasPasskey: u.HasPasskey,
		CreatedAt:  timestamppb.New(u.CreatedAt),
		UpdatedAt:  timestamppb.New(u.UpdatedAt),
	}
	if u.LastLoginAt != nil {
		result.LastLoginAt = timestamppb.New(*u.LastLoginAt)
	}
	return result
}

// handleDomainError converts domain errors to gRPC status using the
// structured error system.
func handleDomainError(err error) error {
	return apperrors.HandleError(err)
}
