// Package token issues and verifies signed session credentials.
package token

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ledgerlane/identity/internal/platform/config"
)

// Config controls session token signing.
//
// Keys are base64-encoded raw ed25519 keys (cmd/signing-key emits a pair).
// A verifier-only deployment may omit the private key.
type Config struct {
	Issuer     string        `env:"LEDGERLANE_AUTH_TOKEN_ISSUER"      envDefault:"ledgerlane-identity"`
	Audience   string        `env:"LEDGERLANE_AUTH_TOKEN_AUDIENCE"    envDefault:"ledgerlane"`
	PrivateKey string        `env:"LEDGERLANE_AUTH_TOKEN_PRIVATE_KEY"`
	PublicKey  string        `env:"LEDGERLANE_AUTH_TOKEN_PUBLIC_KEY"`
	TTL        time.Duration `env:"LEDGERLANE_AUTH_TOKEN_TTL"         envDefault:"1h"`
	Leeway     time.Duration `env:"LEDGERLANE_AUTH_TOKEN_LEEWAY"      envDefault:"30s"`
}

// LoadConfigFromEnv parses token configuration from the environment.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("token config: %w", err)
	}
	return cfg, nil
}

func (c Config) signingKey() (ed25519.PrivateKey, error) {
	raw := strings.TrimSpace(c.PrivateKey)
	if raw == "" {
		return nil, nil
	}
	decoded, err := decodeBase64(raw)
	if err != nil {
		return nil, fmt.Errorf("decode token private key: %w", err)
	}
	if len(decoded) == ed25519.SeedSize {
		return ed25519.NewKeyFromSeed(decoded), nil
	}
	if len(decoded) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("token private key must be %d or %d bytes", ed25519.SeedSize, ed25519.PrivateKeySize)
	}
	return ed25519.PrivateKey(decoded), nil
}

func (c Config) verifyKey() (ed25519.PublicKey, error) {
	raw := strings.TrimSpace(c.PublicKey)
	if raw == "" {
		return nil, nil
	}
	decoded, err := decodeBase64(raw)
	if err != nil {
		return nil, fmt.Errorf("decode token public key: %w", err)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("token public key must be %d bytes", ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(decoded), nil
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
