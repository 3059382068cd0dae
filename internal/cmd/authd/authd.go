// Package authd wires flag parsing and telemetry setup for the identity
// server binary.
package authd

import (
	"context"
	"flag"
	"log"
	"strconv"
	"strings"
	"time"

	server "github.com/ledgerlane/identity/internal/auth/app"
	"github.com/ledgerlane/identity/internal/platform/otel"
)

// Config holds identity server command configuration.
type Config struct {
	Port int
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses flags into a Config. The environment provides the
// default port; the flag overrides it.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		Port: envPortOrDefault(lookup, "LEDGERLANE_AUTH_PORT", 8083),
	}

	fs.IntVar(&cfg.Port, "port", cfg.Port, "The identity gRPC server port")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the identity server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "identity")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return server.Run(ctx, cfg.Port)
}

func envPortOrDefault(lookup EnvLookup, key string, fallback int) int {
	if lookup == nil {
		return fallback
	}
	value, ok := lookup(key)
	if !ok {
		return fallback
	}
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || port <= 0 {
		return fallback
	}
	return port
}
