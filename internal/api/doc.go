// Package api contains API service implementations.
//
// The grpc subpackage holds the gRPC surfaces organized by concern:
//
//   - grpc/auth/: the identity services (AuthService for registration,
//     login, passkeys, and recovery; TokenService for stateless session
//     verification; StatisticsService for operator counts)
//   - grpc/authclient/: the dial helper collaborating services use to
//     reach the identity server
//
// Handlers validate transport input, delegate to the domain packages
// under internal/auth, and translate domain errors into gRPC status
// codes via internal/platform/errors.
package api
