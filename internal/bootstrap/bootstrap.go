// Package bootstrap sequences the container and database work that stands
// up a disposable postgres development environment: build the image, launch
// a container with the dev port mapping, wait for the database to come up,
// then apply init and seed SQL. Steps are resolved against observed runtime
// state, so repeated invocations skip what already exists, and a container
// launched by a failed invocation is killed before the error is surfaced.
package bootstrap

import (
	"context"
)

// ImageDescriptor is an image as reported by the container runtime
type ImageDescriptor struct {
	// ID is the runtime-assigned image identifier
	ID string

	// RepoTags are the name:tag references pointing at this image
	RepoTags []string
}

// ContainerDescriptor is a running container as reported by the runtime
type ContainerDescriptor struct {
	// ID is the runtime-assigned container identifier
	ID string

	// Image is the reference the container was launched from
	Image string
}

// Handle identifies a container launched by this invocation. It is retained
// only so a failed bootstrap can kill what it started.
type Handle struct {
	ID   string
	Name string
}

// LaunchSpec describes the container to launch for one bootstrap run
type LaunchSpec struct {
	// Image is the full image reference (name:tag)
	Image string

	// Name is the container name; the runtime picks one when empty
	Name string

	// HostPort is published on the host and mapped to ContainerPort
	HostPort      int
	ContainerPort int
}

// ImageRef names the target image. Image existence checks match on the full
// name:tag form. Container checks accept the bare name as well, because
// runtimes report whichever reference the container was launched with.
type ImageRef struct {
	Name string
	Tag  string
}

// String returns the name:tag reference, or just the name when Tag is empty
func (r ImageRef) String() string {
	if r.Tag == "" {
		return r.Name
	}
	return r.Name + ":" + r.Tag
}

// MatchesImage reports whether img carries this reference as a repo tag
func (r ImageRef) MatchesImage(img ImageDescriptor) bool {
	for _, tag := range img.RepoTags {
		if tag == r.String() {
			return true
		}
	}
	return false
}

// MatchesContainer reports whether c was launched from this image
func (r ImageRef) MatchesContainer(c ContainerDescriptor) bool {
	return c.Image == r.Name || c.Image == r.String()
}

// Runtime is the container runtime surface the orchestrator consumes.
// Implementations report failures using the error types in this package.
type Runtime interface {
	// Images returns the images currently visible to the runtime
	Images(ctx context.Context) ([]ImageDescriptor, error)

	// Containers returns the currently running containers
	Containers(ctx context.Context) ([]ContainerDescriptor, error)

	// Build builds contextDir into an image tagged tag, blocking until
	// the build finishes
	Build(ctx context.Context, contextDir, tag string) error

	// Launch starts a detached container and returns its handle. The call
	// returns once the container is started; the container itself keeps
	// running in the background.
	Launch(ctx context.Context, spec LaunchSpec) (Handle, error)

	// Kill terminates a container launched earlier in this invocation
	Kill(ctx context.Context, h Handle) error
}

// Database opens connections to the bootstrapped database
type Database interface {
	Connect(ctx context.Context, dsn string) (Session, error)
}

// Session is a single open database connection
type Session interface {
	// BatchExecute submits the whole SQL text as one batch
	BatchExecute(ctx context.Context, sql string) error

	Close(ctx context.Context) error
}

// Phase tracks where in the bootstrap protocol an invocation is
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseResolving  Phase = "resolving"
	PhaseBuilding   Phase = "building"
	PhaseLaunching  Phase = "launching"
	PhaseSettling   Phase = "settling"
	PhaseConnecting Phase = "connecting"
	PhaseExecuting  Phase = "executing"
	PhaseDone       Phase = "done"

	// PhaseFailed is terminal for failures with nothing to clean up, and
	// for failures whose cleanup itself failed
	PhaseFailed Phase = "failed"

	// PhaseFailedCompensated is terminal for failures where the freshly
	// launched container was killed successfully
	PhaseFailedCompensated Phase = "failed.compensated"
)
