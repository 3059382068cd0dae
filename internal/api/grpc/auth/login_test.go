package auth

import (
	"context"
	"testing"

	authv1 "github.com/ledgerlane/identity/api/gen/go/auth/v1"
	"github.com/ledgerlane/identity/internal/auth/audit"
	"google.golang.org/grpc/codes"
)

func TestLogin_NilRequest(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	_, err := svc.Login(context.Background(), nil)
	assertStatusCode(t, err, codes.InvalidArgument)
}

func TestLogin_Success(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	seeded := registerTestUser(t, svc, users, "alice", "correct horse battery")

	resp, err := svc.Login(context.Background(), &authv1.LoginRequest{
		Username:  "  Alice ",
		Password:  "correct horse battery",
		IpAddress: "203.0.113.7",
		UserAgent: "test-agent",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.GetSessionToken() == "" {
		t.Fatalf("expected session token")
	}
	if resp.GetExpiresAt() == nil {
		t.Fatalf("expected expiry")
	}

	claims, err := svc.sessions.Verify(resp.GetSessionToken())
	if err != nil {
		t.Fatalf("verify session token: %v", err)
	}
	if claims.UserID() != seeded.ID {
		t.Fatalf("token subject = %q, want %q", claims.UserID(), seeded.ID)
	}
	if claims.Role != "user" {
		t.Fatalf("token role = %q, want %q", claims.Role, "user")
	}

	if users.users[seeded.ID].LastLoginAt == nil {
		t.Fatalf("expected last login stamped")
	}

	if len(users.audits) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(users.audits))
	}
	entry := users.audits[0]
	if !entry.Success || entry.Method != audit.MethodPassword {
		t.Fatalf("audit entry = %+v, want password success", entry)
	}
	if entry.IPAddress != "203.0.113.7" || entry.UserAgent != "test-agent" {
		t.Fatalf("audit attribution = %q %q", entry.IPAddress, entry.UserAgent)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	seeded := registerTestUser(t, svc, users, "alice", "correct horse battery")

	_, err := svc.Login(context.Background(), &authv1.LoginRequest{
		Username: "alice",
		Password: "wrong password",
	})
	assertStatusCode(t, err, codes.Unauthenticated)

	if len(users.audits) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(users.audits))
	}
	if users.audits[0].Success {
		t.Fatalf("expected failed audit entry")
	}
	if users.audits[0].UserID != seeded.ID {
		t.Fatalf("audit user = %q, want %q", users.audits[0].UserID, seeded.ID)
	}
}

func TestLogin_UnknownUsernameLooksLikeBadPassword(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	registerTestUser(t, svc, users, "alice", "correct horse battery")

	_, unknownErr := svc.Login(context.Background(), &authv1.LoginRequest{
		Username: "nobody",
		Password: "correct horse battery",
	})
	_, badPassErr := svc.Login(context.Background(), &authv1.LoginRequest{
		Username: "alice",
		Password: "wrong password",
	})

	assertStatusCode(t, unknownErr, codes.Unauthenticated)
	assertStatusCode(t, badPassErr, codes.Unauthenticated)
	if unknownErr.Error() != badPassErr.Error() {
		t.Fatalf("unknown user and bad password must be indistinguishable: %q vs %q", unknownErr, badPassErr)
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	seeded := registerTestUser(t, svc, users, "alice", "correct horse battery")
	seeded.IsActive = false
	users.users[seeded.ID] = seeded

	_, err := svc.Login(context.Background(), &authv1.LoginRequest{
		Username: "alice",
		Password: "correct horse battery",
	})
	assertStatusCode(t, err, codes.PermissionDenied)

	if len(users.audits) != 1 || users.audits[0].Success {
		t.Fatalf("expected failed audit entry")
	}
}

func TestLogin_PasskeyOnlyAccountHasNoPassword(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	seeded := registerTestUser(t, svc, users, "alice", "correct horse battery")
	seeded.PasswordHash = ""
	seeded.HasPasskey = true
	users.users[seeded.ID] = seeded

	_, err := svc.Login(context.Background(), &authv1.LoginRequest{
		Username: "alice",
		Password: "correct horse battery",
	})
	assertStatusCode(t, err, codes.Unauthenticated)
}
