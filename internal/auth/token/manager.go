package token

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
)

var (
	// ErrTokenInvalid covers malformed tokens and bad signatures.
	ErrTokenInvalid = apperrors.New(apperrors.CodeSessionTokenInvalid, "session token is invalid")
	// ErrTokenExpired covers tokens past their expiry.
	ErrTokenExpired = apperrors.New(apperrors.CodeSessionTokenExpired, "session token is expired")
)

// Claims are the decoded contents of a session credential.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c Claims) UserID() string {
	return c.Subject
}

// Manager signs and verifies session credentials with ed25519.
//
// Verification is stateless: no storage lookup, no revocation list. The key
// material stays inside this process; collaborating services verify through
// the TokenService RPC instead of holding keys.
type Manager struct {
	issuer    string
	audience  string
	ttl       time.Duration
	leeway    time.Duration
	signKey   ed25519.PrivateKey
	verifyKey ed25519.PublicKey
	clock     func() time.Time
}

// NewManager builds a Manager from config. A manager without a private key
// can only verify.
func NewManager(cfg Config) (*Manager, error) {
	if strings.TrimSpace(cfg.Issuer) == "" {
		return nil, errors.New("token issuer is required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("token leeway must be between 0 and 2m")
	}

	signKey, err := cfg.signingKey()
	if err != nil {
		return nil, err
	}
	verifyKey, err := cfg.verifyKey()
	if err != nil {
		return nil, err
	}
	if verifyKey == nil {
		if signKey == nil {
			return nil, errors.New("token config needs a private or public key")
		}
		verifyKey = signKey.Public().(ed25519.PublicKey)
	}

	return &Manager{
		issuer:    strings.TrimSpace(cfg.Issuer),
		audience:  strings.TrimSpace(cfg.Audience),
		ttl:       cfg.TTL,
		leeway:    cfg.Leeway,
		signKey:   signKey,
		verifyKey: verifyKey,
		clock:     time.Now,
	}, nil
}

// WithClock overrides the time source; for tests.
func (m *Manager) WithClock(clock func() time.Time) *Manager {
	m.clock = clock
	return m
}

// Issue signs a session credential for the user and role.
func (m *Manager) Issue(userID string, role string) (string, time.Time, error) {
	if m.signKey == nil {
		return "", time.Time{}, errors.New("token manager is verify-only")
	}
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, errors.New("user id is required")
	}

	now := m.clock().UTC()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if m.audience != "" {
		claims.Audience = jwt.ClaimStrings{m.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(m.signKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a session credential.
// Failures collapse into ErrTokenExpired or ErrTokenInvalid.
func (m *Manager) Verify(tokenStr string) (Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return m.clock().UTC() }),
	}
	if m.leeway > 0 {
		options = append(options, jwt.WithLeeway(m.leeway))
	}
	if m.audience != "" {
		options = append(options, jwt.WithAudience(m.audience))
	}

	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return m.verifyKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, ErrTokenInvalid
	}
	return *claims, nil
}
