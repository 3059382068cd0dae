package auth

import (
	"context"
	"strings"

	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	"github.com/ledgerlane/identity/internal/auth/audit"
	"github.com/ledgerlane/identity/internal/platform/grpc/pagination"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ListAuditLog returns the newest authentication attempts for a user.
func (s *AuthService) ListAuditLog(ctx context.Context, in *authv1.ListAuditLogRequest) (*authv1.ListAuditLogResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list audit log request is required")
	}
	if s.auditor == nil {
		return nil, status.Error(codes.Internal, "audit recorder is not configured")
	}

	userID := strings.TrimSpace(in.GetUserId())
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user id is required")
	}

	limit := pagination.ClampPageSize(in.GetPageSize(), pagination.PageSizeConfig{
		Default: 50,
		Max:     200,
	})

	entries, err := s.auditor.List(ctx, userID, limit)
	if err != nil {
		return nil, handleDomainError(err)
	}

	out := make([]*authv1.AuditEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, auditEntryToProto(entry))
	}
	return &authv1.ListAuditLogResponse{Entries: out}, nil
}

func auditEntryToProto(entry audit.Entry) *authv1.AuditEntry {
	return &authv1.AuditEntry{
		Id:          entry.ID,
		UserId:      entry.UserID,
		AuthMethod:  string(entry.Method),
		Success:     entry.Success,
		IpAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
		AttemptedAt: timestamppb.New(entry.AttemptedAt),
		Metadata:    entry.Metadata,
	}
}
