package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeInvalidCredentials, "username or password is incorrect")
	target := New(CodeInvalidCredentials, "different message")

	if !stderrors.Is(err, target) {
		t.Fatal("expected errors with the same code to match")
	}
	if stderrors.Is(err, New(CodeNotFound, "record not found")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(CodeUnavailable, "storage failed", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != "storage failed" {
		t.Fatalf("message = %q, want %q", err.Error(), "storage failed")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(CodePasswordReused, "reused")); got != CodePasswordReused {
		t.Fatalf("code = %q, want %q", got, CodePasswordReused)
	}
	wrapped := fmt.Errorf("outer: %w", New(CodeCeremonyNotFound, "gone"))
	if got := GetCode(wrapped); got != CodeCeremonyNotFound {
		t.Fatalf("code = %q, want %q", got, CodeCeremonyNotFound)
	}
	if got := GetCode(fmt.Errorf("plain")); got != CodeUnknown {
		t.Fatalf("code = %q, want %q", got, CodeUnknown)
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	cases := []struct {
		code Code
		want codes.Code
	}{
		{CodeDuplicateIdentity, codes.AlreadyExists},
		{CodeInvalidCredentials, codes.Unauthenticated},
		{CodeInactiveAccount, codes.PermissionDenied},
		{CodePasswordReused, codes.FailedPrecondition},
		{CodeLastAuthenticationMethod, codes.FailedPrecondition},
		{CodeCeremonyNotFound, codes.NotFound},
		{CodeCeremonyExpired, codes.FailedPrecondition},
		{CodePossibleCloneDetected, codes.PermissionDenied},
		{CodeSingleUseTokenNotFound, codes.NotFound},
		{CodeSingleUseTokenExpired, codes.FailedPrecondition},
		{CodeSessionTokenInvalid, codes.Unauthenticated},
		{CodeSessionTokenExpired, codes.Unauthenticated},
		{CodeNotFound, codes.NotFound},
		{CodeUnavailable, codes.Unavailable},
		{CodeUnknown, codes.Internal},
	}
	for _, tc := range cases {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Errorf("%s maps to %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestHandleErrorAttachesErrorInfo(t *testing.T) {
	err := HandleError(New(CodePossibleCloneDetected, "signature counter regressed"))

	st, ok := status.FromError(err)
	if !ok {
		t.Fatal("expected a gRPC status error")
	}
	if st.Code() != codes.PermissionDenied {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.PermissionDenied)
	}
	if len(st.Details()) == 0 {
		t.Fatal("expected error details")
	}
}

func TestHandleErrorNil(t *testing.T) {
	if HandleError(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}
