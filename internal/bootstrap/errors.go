package bootstrap

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStep indicates a step name outside build/run/init/seed
	ErrUnknownStep = errors.New("unknown step")

	// ErrMissingSQL indicates a step needed an SQL payload that was not
	// configured
	ErrMissingSQL = errors.New("sql payload not configured")
)

// RuntimeError wraps a failure from the container runtime client
type RuntimeError struct {
	// Op is the runtime operation that failed ("list images", "run", ...)
	Op  string
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("container runtime %s: %v", e.Op, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a RuntimeError
func NewRuntimeError(op string, err error) *RuntimeError {
	return &RuntimeError{Op: op, Err: err}
}

// ExitError indicates a spawned runtime command finished with a non-zero
// status
type ExitError struct {
	Command string
	Status  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command `%s` did not exit: exit status %d", e.Command, e.Status)
}

// CommandNotFoundError indicates the runtime binary is missing from the
// host. It is always wrapped in a RuntimeError by the runtime client.
type CommandNotFoundError struct {
	Command string
	Err     error
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s not found on this system: %v", e.Command, e.Err)
}

func (e *CommandNotFoundError) Unwrap() error {
	return e.Err
}

// DatabaseError wraps a connect or SQL execution failure
type DatabaseError struct {
	// Op is the database operation that failed ("connect", "init", "seed")
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("postgres %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// CompensationError reports that killing a freshly launched container after
// a failure itself failed. Both the original failure and the kill failure
// are preserved in the unwrap chain.
type CompensationError struct {
	// Cause is the failure that triggered the cleanup
	Cause error

	// CleanupErr is the failure of the kill itself
	CleanupErr error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("%v (container kill also failed: %v)", e.Cause, e.CleanupErr)
}

func (e *CompensationError) Unwrap() []error {
	return []error{e.Cause, e.CleanupErr}
}
