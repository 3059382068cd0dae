// Package errors provides structured error handling for the identity service.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Identity errors
	CodeDuplicateIdentity Code = "AUTH_DUPLICATE_IDENTITY"
	CodeUserEmptyUsername Code = "AUTH_USER_EMPTY_USERNAME"
	CodeInvalidUsername   Code = "AUTH_USER_INVALID_USERNAME"
	CodeInvalidEmail      Code = "AUTH_USER_INVALID_EMAIL"

	// Credential errors
	CodeInvalidCredentials       Code = "AUTH_INVALID_CREDENTIALS"
	CodeInactiveAccount          Code = "AUTH_INACTIVE_ACCOUNT"
	CodePasswordReused           Code = "AUTH_PASSWORD_REUSED"
	CodeWeakPassword             Code = "AUTH_WEAK_PASSWORD"
	CodeLastAuthenticationMethod Code = "AUTH_LAST_AUTHENTICATION_METHOD"

	// Passkey ceremony errors
	CodeCeremonyNotFound      Code = "AUTH_CEREMONY_NOT_FOUND"
	CodeCeremonyExpired       Code = "AUTH_CEREMONY_EXPIRED"
	CodePossibleCloneDetected Code = "AUTH_POSSIBLE_CLONE_DETECTED"

	// Single-use token errors
	CodeSingleUseTokenNotFound Code = "AUTH_SINGLE_USE_TOKEN_NOT_FOUND"
	CodeSingleUseTokenExpired  Code = "AUTH_SINGLE_USE_TOKEN_EXPIRED"

	// Session token errors
	CodeSessionTokenInvalid Code = "AUTH_SESSION_TOKEN_INVALID"
	CodeSessionTokenExpired Code = "AUTH_SESSION_TOKEN_EXPIRED"

	// Storage errors
	CodeNotFound    Code = "NOT_FOUND"
	CodeUnavailable Code = "UNAVAILABLE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeUserEmptyUsername,
		CodeInvalidUsername,
		CodeInvalidEmail,
		CodeWeakPassword:
		return codes.InvalidArgument

	// Unauthenticated - credential verification failures
	case CodeInvalidCredentials,
		CodeSessionTokenInvalid,
		CodeSessionTokenExpired:
		return codes.Unauthenticated

	// PermissionDenied - known identity, forbidden attempt
	case CodePossibleCloneDetected,
		CodeInactiveAccount:
		return codes.PermissionDenied

	// FailedPrecondition - state doesn't allow the operation
	case CodePasswordReused,
		CodeLastAuthenticationMethod,
		CodeCeremonyExpired,
		CodeSingleUseTokenExpired:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist (or was already consumed)
	case CodeNotFound,
		CodeCeremonyNotFound,
		CodeSingleUseTokenNotFound:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeDuplicateIdentity:
		return codes.AlreadyExists

	case CodeUnavailable:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}
