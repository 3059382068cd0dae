package config_test

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/ledgerlane/identity/internal/platform/config"
)

// os.Exit cannot be intercepted in-process, so the assertion runs in a
// re-executed test binary.
func TestExitfTerminatesWithStatusOne(t *testing.T) {
	if os.Getenv("EXITF_CHILD") == "1" {
		config.Exitf("boom: %s", "bad flag")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfTerminatesWithStatusOne$")
	cmd.Env = append(os.Environ(), "EXITF_CHILD=1")
	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "boom: bad flag") {
		t.Fatalf("expected stderr message, got %q", string(out))
	}
}
