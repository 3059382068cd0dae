// Package server assembles the identity service: storage, token manager,
// gRPC services, health checks, and the background workers that keep
// expired state from accumulating.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	authservice "github.com/ledgerlane/identity/internal/api/grpc/auth"
	"github.com/ledgerlane/identity/internal/auth/mailer"
	authsqlite "github.com/ledgerlane/identity/internal/auth/storage/sqlite"
	"github.com/ledgerlane/identity/internal/auth/token"
	"github.com/ledgerlane/identity/internal/platform/logging"
)

const cleanupInterval = 5 * time.Minute

// Server hosts the identity service.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *authsqlite.Store
	dispatcher *mailer.Dispatcher
	logger     logging.Logger
}

// New creates a configured identity server listening on the provided port.
func New(port int) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	server, err := newWithListener(listener)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	return server, nil
}

func newWithListener(listener net.Listener) (*Server, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	store, err := openAuthStore()
	if err != nil {
		return nil, err
	}

	tokenCfg, err := token.LoadConfigFromEnv()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load token config: %w", err)
	}
	sessions, err := token.NewManager(tokenCfg)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build token manager: %w", err)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	authService := authservice.NewAuthService(authservice.Config{
		Store:        store,
		PasskeyStore: store,
		TokenStore:   store,
		Sessions:     sessions,
		Logger:       logger,
	})
	tokenService := authservice.NewTokenService(sessions, logger)
	statisticsService := authservice.NewStatisticsService(store)
	healthServer := health.NewServer()
	authv1.RegisterAuthServiceServer(grpcServer, authService)
	authv1.RegisterTokenServiceServer(grpcServer, tokenService)
	authv1.RegisterStatisticsServiceServer(grpcServer, statisticsService)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("auth.v1.AuthService", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("auth.v1.TokenService", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("auth.v1.StatisticsService", grpc_health_v1.HealthCheckResponse_SERVING)

	dispatcher := mailer.NewDispatcher(store, mailer.NewLogMailer(logger), logger)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

// Addr returns the listener address for the identity server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves an identity server until the context ends.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the identity server and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.closeStore()

	go s.dispatcher.Run(serverCtx)
	go s.runCleanup(serverCtx)

	s.logger.Info(serverCtx, "identity server listening", "addr", s.listener.Addr().String())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		return handleErr(<-serveErr)
	case err := <-serveErr:
		return handleErr(err)
	}
}

// runCleanup periodically removes expired ceremonies and single-use
// tokens so abandoned flows do not pile up in storage.
func (s *Server) runCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().UTC()
			if err := s.store.DeleteExpiredCeremonies(ctx, now); err != nil {
				s.logger.Warn(ctx, "delete expired ceremonies", "error", err)
			}
			if err := s.store.DeleteExpiredSingleUseTokens(ctx, now); err != nil {
				s.logger.Warn(ctx, "delete expired single-use tokens", "error", err)
			}
		}
	}
}

func (s *Server) closeStore() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func openAuthStore() (*authsqlite.Store, error) {
	path := strings.TrimSpace(os.Getenv("LEDGERLANE_AUTH_DB_PATH"))
	if path == "" {
		path = filepath.Join("data", "identity.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := authsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open identity sqlite store: %w", err)
	}
	return store, nil
}
