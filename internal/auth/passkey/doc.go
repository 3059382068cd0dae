// Package passkey configures WebAuthn passkey support.
//
// It holds relying party settings and ceremony session timing for the
// registration and login flows.
package passkey
