// Package container implements the bootstrap runtime client. State queries
// (images, running containers) go through the runtime API socket; build,
// run, and kill are invoked through the runtime CLI binary, so their output
// streams and exit codes match what a developer sees in a terminal.
package container

import (
	"fmt"
	"io"

	"github.com/docker/docker/client"

	"github.com/RevCBH/pgbox/internal/bootstrap"
)

// Config specifies how the runtime client is constructed
type Config struct {
	// Binary is the runtime CLI to invoke ("docker" or "podman").
	// Empty means auto-detect.
	Binary string
}

// Runtime talks to the local container runtime. It implements
// bootstrap.Runtime.
type Runtime struct {
	binary string
	api    apiClient
}

// Verify Runtime satisfies the orchestrator surface
var _ bootstrap.Runtime = (*Runtime)(nil)

// New creates a runtime client. A configured binary is verified up front;
// an empty one is auto-detected. The API connection is established lazily,
// so construction succeeds even when the daemon is not reachable yet.
func New(cfg Config) (*Runtime, error) {
	binary := cfg.Binary
	if binary == "" {
		detected, err := DetectRuntime()
		if err != nil {
			return nil, err
		}
		binary = detected
	} else if err := VerifyRuntime(binary); err != nil {
		return nil, err
	}

	api, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create runtime API client: %w", err)
	}

	return &Runtime{binary: binary, api: api}, nil
}

// Binary returns the CLI binary this client invokes
func (r *Runtime) Binary() string {
	return r.binary
}

// Close releases the API connection
func (r *Runtime) Close() error {
	if c, ok := r.api.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
