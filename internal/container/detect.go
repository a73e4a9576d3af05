package container

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/RevCBH/pgbox/internal/bootstrap"
)

// ErrNoRuntime is returned when no container runtime is found.
var ErrNoRuntime = errors.New("no container runtime found (need docker or podman)")

// runtimeCandidates are probed in order by DetectRuntime
var runtimeCandidates = []string{"docker", "podman"}

// DetectRuntime finds an available container runtime. Docker wins over
// podman when both are present. A binary only counts when `<bin> version`
// succeeds, so an installed docker CLI without a reachable daemon falls
// through to podman.
func DetectRuntime() (string, error) {
	for _, bin := range runtimeCandidates {
		if VerifyRuntime(bin) == nil {
			return bin, nil
		}
	}
	return "", ErrNoRuntime
}

// VerifyRuntime checks that the named binary exists and answers
// `<bin> version`. A missing binary is reported through the bootstrap
// error taxonomy so the CLI shows the not-found hint; this is what a
// typo in the configured runtime binary surfaces as.
func VerifyRuntime(bin string) error {
	if _, err := exec.LookPath(bin); err != nil {
		return bootstrap.NewRuntimeError("detect", &bootstrap.CommandNotFoundError{Command: bin, Err: err})
	}
	if err := exec.Command(bin, "version").Run(); err != nil {
		return bootstrap.NewRuntimeError("detect", fmt.Errorf("%s version: %w", bin, err))
	}
	return nil
}
