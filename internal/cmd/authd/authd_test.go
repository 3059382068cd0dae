package authd

import (
	"flag"
	"testing"
)

func lookupFrom(env map[string]string) EnvLookup {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("authd", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8083 {
		t.Fatalf("expected default port 8083, got %d", cfg.Port)
	}
}

func TestParseConfigEnvPort(t *testing.T) {
	fs := flag.NewFlagSet("authd", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, lookupFrom(map[string]string{"LEDGERLANE_AUTH_PORT": "9100"}))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("expected env port 9100, got %d", cfg.Port)
	}
}

func TestParseConfigFlagOverridesEnv(t *testing.T) {
	fs := flag.NewFlagSet("authd", flag.ContinueOnError)
	args := []string{"-port", "9000"}
	cfg, err := ParseConfig(fs, args, lookupFrom(map[string]string{"LEDGERLANE_AUTH_PORT": "9100"}))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.Port)
	}
}

func TestParseConfigInvalidEnvPort(t *testing.T) {
	fs := flag.NewFlagSet("authd", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, lookupFrom(map[string]string{"LEDGERLANE_AUTH_PORT": "not-a-port"}))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8083 {
		t.Fatalf("expected fallback port 8083, got %d", cfg.Port)
	}
}
