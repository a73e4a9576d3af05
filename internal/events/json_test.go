package events

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestJSONEmitter_Emit(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewJSONEmitter(&buf)

	event := Event{
		Time:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Type:      ContainerLaunched,
		Step:      "run",
		Container: "a1b2c3",
	}
	if err := emitter.Emit(event); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	var je JSONEvent
	if err := json.Unmarshal([]byte(line), &je); err != nil {
		t.Fatalf("output is not valid JSON: %v\nline: %s", err, line)
	}

	if je.Type != "container.launched" {
		t.Errorf("expected type %q, got %q", "container.launched", je.Type)
	}
	if je.Step != "run" {
		t.Errorf("expected step %q, got %q", "run", je.Step)
	}
	if je.Container != "a1b2c3" {
		t.Errorf("expected container %q, got %q", "a1b2c3", je.Container)
	}
	if !je.Timestamp.Equal(event.Time) {
		t.Errorf("expected timestamp %v, got %v", event.Time, je.Timestamp)
	}
}

func TestJSONEmitter_OneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewJSONEmitter(&buf)

	emitter.Emit(NewEvent(BootstrapStarted, "seed"))
	emitter.Emit(NewEvent(BootstrapCompleted, "seed"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		var je JSONEvent
		if err := json.Unmarshal([]byte(line), &je); err != nil {
			t.Errorf("line is not valid JSON: %v\nline: %s", err, line)
		}
	}
}

func TestToJSONEvent_PayloadWrapping(t *testing.T) {
	// Scalar payloads are wrapped under "value"
	je := ToJSONEvent(NewEvent(DBConnectRetry, "init").WithPayload(2))
	if je.Payload["value"] != 2 {
		t.Errorf("expected scalar payload wrapped under value, got %v", je.Payload)
	}

	// Map payloads pass through unchanged
	je = ToJSONEvent(NewEvent(SQLApplied, "seed").WithPayload(map[string]any{"batch": "init"}))
	if je.Payload["batch"] != "init" {
		t.Errorf("expected map payload to pass through, got %v", je.Payload)
	}
}

func TestJSONEmitterHandler(t *testing.T) {
	var buf bytes.Buffer
	bus := NewBus()
	bus.Subscribe(JSONEmitterHandler(NewJSONEmitter(&buf)))

	bus.Emit(NewEvent(ImageBuilt, "build").WithPayload("pgbox-postgres:latest"))

	if !strings.Contains(buf.String(), `"type":"image.built"`) {
		t.Errorf("expected emitted JSON to contain the event type, got: %s", buf.String())
	}
}
