package auth

import (
	"context"
	"net"
	"testing"
	"time"

	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	"github.com/ledgerlane/identity/internal/platform/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

// startWireServer runs the services over an in-memory listener so requests
// and responses go through the real codec.
func startWireServer(t *testing.T, register func(*grpc.Server)) *grpc.ClientConn {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	register(srv)
	go func() { _ = srv.Serve(listener) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///wire",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestVerifyTokenOverWire(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	signed, _, err := svc.sessions.Issue("user-1", "user")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	conn := startWireServer(t, func(srv *grpc.Server) {
		authv1.RegisterTokenServiceServer(srv, NewTokenService(svc.sessions, logging.Nop()))
	})
	client := authv1.NewTokenServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.VerifyToken(ctx, &authv1.VerifyTokenRequest{Token: signed})
	if err != nil {
		t.Fatalf("verify token over wire: %v", err)
	}
	if resp.GetUserId() != "user-1" || resp.GetRole() != "user" {
		t.Fatalf("claims = (%q, %q), want (user-1, user)", resp.GetUserId(), resp.GetRole())
	}
	if resp.GetExpiresAt() == nil {
		t.Fatal("expected expiry timestamp to survive the round trip")
	}
}

func TestRegisterOverWire(t *testing.T) {
	svc, users, _, _ := newTestService(t)

	conn := startWireServer(t, func(srv *grpc.Server) {
		authv1.RegisterAuthServiceServer(srv, svc)
	})
	client := authv1.NewAuthServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Register(ctx, &authv1.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("register over wire: %v", err)
	}
	if resp.GetUser().GetUsername() != "alice" {
		t.Fatalf("username = %q, want alice", resp.GetUser().GetUsername())
	}
	if resp.GetUser().GetCreatedAt() == nil {
		t.Fatal("expected created_at timestamp to survive the round trip")
	}
	if _, ok := users.users[resp.GetUser().GetId()]; !ok {
		t.Fatal("expected user persisted")
	}
}
