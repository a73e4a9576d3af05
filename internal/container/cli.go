package container

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/RevCBH/pgbox/internal/bootstrap"
)

// Build builds contextDir into an image tagged tag, streaming build output
// to the terminal. Blocks until the build finishes.
func (r *Runtime) Build(ctx context.Context, contextDir, tag string) error {
	if contextDir == "" {
		contextDir = "."
	}

	cmd := exec.CommandContext(ctx, r.binary, "build", contextDir, "-t", tag)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return r.classify("build", err)
	}
	return nil
}

// Launch starts a detached container with the requested port mapping and
// returns its handle. The CLI call returns as soon as the container is
// started; the container keeps running in the background.
func (r *Runtime) Launch(ctx context.Context, spec bootstrap.LaunchSpec) (bootstrap.Handle, error) {
	name := spec.Name
	if name == "" {
		name = newContainerName()
	}

	args := []string{
		"run", "-d",
		"--name", name,
		"-p", fmt.Sprintf("%d:%d", spec.HostPort, spec.ContainerPort),
		spec.Image,
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stderr = os.Stderr

	output, err := cmd.Output()
	if err != nil {
		return bootstrap.Handle{}, r.classify("run", err)
	}

	id := strings.TrimSpace(string(output))
	return bootstrap.Handle{ID: id, Name: name}, nil
}

// Kill terminates a running container
func (r *Runtime) Kill(ctx context.Context, h bootstrap.Handle) error {
	target := h.ID
	if target == "" {
		target = h.Name
	}

	cmd := exec.CommandContext(ctx, r.binary, "kill", target)
	if output, err := cmd.CombinedOutput(); err != nil {
		return bootstrap.NewRuntimeError("kill", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output))))
	}
	return nil
}

// classify maps an exec failure onto the bootstrap error taxonomy: a
// missing binary becomes a CommandNotFoundError inside a RuntimeError, a
// non-zero exit becomes an ExitError, anything else stays a plain
// RuntimeError.
func (r *Runtime) classify(op string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return bootstrap.NewRuntimeError(op, &bootstrap.CommandNotFoundError{Command: r.binary, Err: err})
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &bootstrap.ExitError{Command: r.binary, Status: exitErr.ExitCode()}
	}

	return bootstrap.NewRuntimeError(op, err)
}

// newContainerName returns a unique name for a launched container
func newContainerName() string {
	return fmt.Sprintf("pgbox-%s", ulid.Make().String())
}
