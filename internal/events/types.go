package events

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single occurrence in the bootstrap lifecycle
type Event struct {
	// Time is when the event occurred (set by bus on emit)
	Time time.Time `json:"time"`

	// Type identifies what happened
	Type EventType `json:"type"`

	// Step is the bootstrap step this event relates to
	Step string `json:"step,omitempty"`

	// Container is the container ID (empty for events before launch)
	Container string `json:"container,omitempty"`

	// Payload contains event-specific data (type varies by event)
	Payload any `json:"payload,omitempty"`

	// Error contains error message if this is a failure event
	Error string `json:"error,omitempty"`
}

// EventType is a string constant identifying the event category
type EventType string

// Bootstrap lifecycle events
const (
	BootstrapStarted   EventType = "bootstrap.started"
	BootstrapCompleted EventType = "bootstrap.completed"
	BootstrapFailed    EventType = "bootstrap.failed"
)

// Image events
const (
	// ImageBuildStarted is emitted before the image build runs
	// Payload: image reference (string)
	ImageBuildStarted EventType = "image.build.started"

	// ImageBuilt is emitted when the build finished successfully
	// Payload: image reference (string)
	ImageBuilt EventType = "image.built"
)

// Container events
const (
	ContainerLaunched EventType = "container.launched"
	ContainerReused   EventType = "container.reused"

	// ContainerKilled is emitted when a failed invocation cleaned up the
	// container it launched
	ContainerKilled EventType = "container.killed"
)

// Database events
const (
	// DBSettling is emitted when a fresh launch waits out the settle delay
	// Payload: delay (string)
	DBSettling EventType = "db.settling"

	DBConnected EventType = "db.connected"

	// DBConnectRetry is emitted before a repeated connect attempt
	// Payload: attempt number (int)
	DBConnectRetry EventType = "db.connect.retry"
)

// SQL events
const (
	// SQLApplied is emitted after a batch ran successfully
	// Payload: batch name ("init" or "seed")
	SQLApplied EventType = "sql.applied"
)

// NewEvent creates an event with the given type and step
func NewEvent(eventType EventType, step string) Event {
	return Event{
		Type: eventType,
		Step: step,
	}
}

// WithContainer returns a copy of the event with the container ID set
func (e Event) WithContainer(id string) Event {
	e.Container = id
	return e
}

// WithPayload returns a copy of the event with the payload set
func (e Event) WithPayload(payload any) Event {
	e.Payload = payload
	return e
}

// WithError returns a copy of the event with the error message set
func (e Event) WithError(err error) Event {
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// IsFailure returns true if this is a failure event type
func (e Event) IsFailure() bool {
	return strings.HasSuffix(string(e.Type), ".failed")
}

// String returns a human-readable representation of the event
func (e Event) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", e.Type))

	if e.Step != "" {
		parts = append(parts, e.Step)
	}

	if e.Container != "" {
		parts = append(parts, fmt.Sprintf("container=%s", e.Container))
	}

	return strings.Join(parts, " ")
}
