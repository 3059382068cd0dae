package password

import (
	"github.com/ledgerlane/identity/internal/platform/config"
)

// Config controls hashing cost and the reuse-prevention window.
type Config struct {
	MemoryKiB      uint32 `env:"LEDGERLANE_AUTH_ARGON2_MEMORY_KIB"  envDefault:"65536"`
	Time           uint32 `env:"LEDGERLANE_AUTH_ARGON2_TIME"        envDefault:"3"`
	Parallelism    uint8  `env:"LEDGERLANE_AUTH_ARGON2_PARALLELISM" envDefault:"2"`
	HistoryWindow  int    `env:"LEDGERLANE_AUTH_PASSWORD_HISTORY"   envDefault:"5"`
	MinLength      int    `env:"LEDGERLANE_AUTH_PASSWORD_MIN_LEN"   envDefault:"8"`
	ResetTokenSize int    `env:"LEDGERLANE_AUTH_RESET_TOKEN_BYTES"  envDefault:"32"`
}

// LoadConfigFromEnv returns password policy configuration with defaults.
func LoadConfigFromEnv() Config {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{
			MemoryKiB:      64 * 1024,
			Time:           3,
			Parallelism:    2,
			HistoryWindow:  5,
			MinLength:      8,
			ResetTokenSize: 32,
		}
	}
	if cfg.HistoryWindow < 0 {
		cfg.HistoryWindow = 0
	}
	return cfg
}

// Params converts the config into hasher parameters.
func (c Config) Params() Params {
	params := DefaultParams()
	if c.MemoryKiB > 0 {
		params.Memory = c.MemoryKiB
	}
	if c.Time > 0 {
		params.Time = c.Time
	}
	if c.Parallelism > 0 {
		params.Parallelism = c.Parallelism
	}
	if c.MinLength > 0 {
		params.MinLength = c.MinLength
	}
	return params
}
