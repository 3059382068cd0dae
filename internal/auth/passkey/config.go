package passkey

import (
	"time"

	"github.com/ledgerlane/identity/internal/platform/config"
)

// SessionKind describes the WebAuthn ceremony purpose.
type SessionKind string

const (
	SessionKindRegistration SessionKind = "registration"
	SessionKindLogin        SessionKind = "login"
)

const defaultRPDisplayName = "LedgerLane"

// Config controls WebAuthn relying party settings.
type Config struct {
	RPDisplayName string        `env:"LEDGERLANE_AUTH_WEBAUTHN_RP_DISPLAY_NAME"`
	RPID          string        `env:"LEDGERLANE_AUTH_WEBAUTHN_RP_ID"           envDefault:"localhost"`
	RPOrigins     []string      `env:"LEDGERLANE_AUTH_WEBAUTHN_RP_ORIGINS"      envSeparator:","`
	SessionTTL    time.Duration `env:"LEDGERLANE_AUTH_WEBAUTHN_SESSION_TTL"     envDefault:"5m"`
}

// LoadConfigFromEnv returns passkey configuration with defaults. Fields that
// fail to parse fall back individually so one bad variable does not discard
// the rest.
func LoadConfigFromEnv() Config {
	var cfg Config
	_ = config.ParseEnv(&cfg)
	if cfg.RPDisplayName == "" {
		cfg.RPDisplayName = defaultRPDisplayName
	}
	if cfg.RPID == "" {
		cfg.RPID = "localhost"
	}
	if len(cfg.RPOrigins) == 0 {
		cfg.RPOrigins = []string{"http://localhost:8086"}
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 5 * time.Minute
	}
	return cfg
}
