// Package signingkey generates ed25519 key pairs for session token signing.
package signingkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
)

// Config holds configuration for signing key generation.
type Config struct {
	PrivateEnv string
	PublicEnv  string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		PrivateEnv: "LEDGERLANE_AUTH_TOKEN_PRIVATE_KEY",
		PublicEnv:  "LEDGERLANE_AUTH_TOKEN_PUBLIC_KEY",
	}
	fs.StringVar(&cfg.PrivateEnv, "private-env", cfg.PrivateEnv, "env var name for the private key line")
	fs.StringVar(&cfg.PublicEnv, "public-env", cfg.PublicEnv, "env var name for the public key line")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates a key pair and writes env-style lines to out.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if cfg.PrivateEnv == "" || cfg.PublicEnv == "" {
		return errors.New("env var names are required")
	}
	if out == nil {
		return errors.New("output is required")
	}
	if reader == nil {
		reader = rand.Reader
	}

	pub, priv, err := ed25519.GenerateKey(reader)
	if err != nil {
		return fmt.Errorf("generate ed25519 key: %w", err)
	}
	if _, err := fmt.Fprintf(out, "%s=%s\n", cfg.PrivateEnv, base64.RawStdEncoding.EncodeToString(priv)); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s=%s\n", cfg.PublicEnv, base64.RawStdEncoding.EncodeToString(pub))
	return err
}
