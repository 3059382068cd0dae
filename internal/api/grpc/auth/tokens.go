package auth

import (
	"context"
	"strings"

	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	"github.com/ledgerlane/identity/internal/auth/token"
	"github.com/ledgerlane/identity/internal/platform/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// TokenService validates session tokens for other services. It only needs
// the verification half of the token manager, so deployments can run it
// without the signing key.
type TokenService struct {
	authv1.UnimplementedTokenServiceServer

	sessions *token.Manager
	logger   logging.Logger
}

// NewTokenService wires the token verification RPC surface.
func NewTokenService(sessions *token.Manager, logger logging.Logger) *TokenService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &TokenService{sessions: sessions, logger: logger}
}

func (s *TokenService) VerifyToken(_ context.Context, in *authv1.VerifyTokenRequest) (*authv1.VerifyTokenResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "verify token request is required")
	}
	if s.sessions == nil {
		return nil, status.Error(codes.Internal, "session tokens are not configured")
	}

	raw := strings.TrimSpace(in.GetToken())
	if raw == "" {
		return nil, status.Error(codes.InvalidArgument, "token is required")
	}

	claims, err := s.sessions.Verify(raw)
	if err != nil {
		return nil, handleDomainError(err)
	}

	out := &authv1.VerifyTokenResponse{
		UserId: claims.UserID(),
		Role:   claims.Role,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = timestamppb.New(claims.ExpiresAt.Time)
	}
	return out, nil
}
