package auth

import (
	"context"
	"time"

	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	"github.com/ledgerlane/identity/internal/auth/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StatisticsService exposes auth-level aggregates for operator views.
type StatisticsService struct {
	authv1.UnimplementedStatisticsServiceServer
	store storage.StatisticsStore
}

// NewStatisticsService builds the statistics facade from a statistics store.
func NewStatisticsService(store storage.StatisticsStore) *StatisticsService {
	return &StatisticsService{store: store}
}

// GetStatistics returns aggregate identity counts, optionally restricted to
// records created since a point in time.
func (s *StatisticsService) GetStatistics(ctx context.Context, in *authv1.GetStatisticsRequest) (*authv1.GetStatisticsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get statistics request is required")
	}
	if s.store == nil {
		return nil, status.Error(codes.Internal, "statistics store is not configured")
	}

	var since *time.Time
	if ts := in.GetSince(); ts != nil {
		value := ts.AsTime().UTC()
		since = &value
	}

	stats, err := s.store.GetAuthStatistics(ctx, since)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get statistics: %v", err)
	}

	return &authv1.GetStatisticsResponse{
		UserCount:              stats.UserCount,
		ActiveCredentialCount:  stats.ActiveCredentialCount,
		AuditEntryCount:        stats.AuditEntryCount,
		PendingSingleUseTokens: stats.PendingSingleUseTokens,
	}, nil
}
