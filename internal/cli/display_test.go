package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/RevCBH/pgbox/internal/bootstrap"
	"github.com/RevCBH/pgbox/internal/events"
)

func TestDisplay_RendersEvents(t *testing.T) {
	tests := []struct {
		name  string
		event events.Event
		want  string
	}{
		{
			name:  "image build started",
			event: events.NewEvent(events.ImageBuildStarted, "seed").WithPayload("pgbox-postgres:latest"),
			want:  "● building image pgbox-postgres:latest",
		},
		{
			name:  "image built",
			event: events.NewEvent(events.ImageBuilt, "seed").WithPayload("pgbox-postgres:latest"),
			want:  "✓ image pgbox-postgres:latest built",
		},
		{
			name:  "container launched",
			event: events.NewEvent(events.ContainerLaunched, "run").WithContainer("0123456789abcdef0123"),
			want:  "✓ container 0123456789ab launched",
		},
		{
			name:  "container reused",
			event: events.NewEvent(events.ContainerReused, "run").WithContainer("feedface0001"),
			want:  "✓ reusing running container feedface0001",
		},
		{
			name:  "settling",
			event: events.NewEvent(events.DBSettling, "init").WithPayload("5s"),
			want:  "● waiting 5s for postgres to come up",
		},
		{
			name:  "connect retry",
			event: events.NewEvent(events.DBConnectRetry, "init").WithPayload(2),
			want:  "● retrying connection (attempt 2)",
		},
		{
			name:  "connected",
			event: events.NewEvent(events.DBConnected, "init"),
			want:  "✓ connected to postgres",
		},
		{
			name:  "sql applied",
			event: events.NewEvent(events.SQLApplied, "seed").WithPayload("init"),
			want:  "✓ init sql applied",
		},
		{
			name:  "container killed",
			event: events.NewEvent(events.ContainerKilled, "seed").WithContainer("deadbeef0002"),
			want:  "✗ killed container deadbeef0002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			d := NewDisplay(buf, false)

			d.Handler()(tt.event)

			got := strings.TrimRight(buf.String(), "\n")
			if got != tt.want {
				t.Errorf("rendered %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplay_LifecycleEventsRenderNothing(t *testing.T) {
	buf := new(bytes.Buffer)
	d := NewDisplay(buf, false)

	handler := d.Handler()
	handler(events.NewEvent(events.BootstrapStarted, "run"))
	handler(events.NewEvent(events.BootstrapCompleted, "run"))
	handler(events.NewEvent(events.BootstrapFailed, "run").WithError(errors.New("boom")))

	if buf.Len() != 0 {
		t.Errorf("expected no output for lifecycle events, got %q", buf.String())
	}
}

func TestDisplay_NoANSIWithoutColor(t *testing.T) {
	buf := new(bytes.Buffer)
	d := NewDisplay(buf, false)

	d.Handler()(events.NewEvent(events.DBConnected, "init"))

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no ANSI escapes with color disabled, got %q", buf.String())
	}
}

func TestDisplay_SummarySuccess(t *testing.T) {
	buf := new(bytes.Buffer)
	d := NewDisplay(buf, false)

	d.Summary(&bootstrap.Result{
		Step:        bootstrap.StepSeed,
		Actions:     []bootstrap.Action{bootstrap.ActionBuild, bootstrap.ActionLaunch, bootstrap.ActionInit, bootstrap.ActionSeed},
		ContainerID: "0123456789abcdef0123",
		Duration:    1503*time.Millisecond + 200*time.Microsecond,
	}, nil)

	output := buf.String()
	for _, want := range []string{
		"Bootstrap complete:",
		"Step:      seed",
		"Actions:   build, launch, init, seed",
		"Container: 0123456789ab",
		"Duration:  1.503s",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected summary to contain %q, got:\n%s", want, output)
		}
	}
}

func TestDisplay_SummaryNothingToDo(t *testing.T) {
	buf := new(bytes.Buffer)
	d := NewDisplay(buf, false)

	d.Summary(&bootstrap.Result{
		Step:        bootstrap.StepRun,
		Actions:     nil,
		ContainerID: "feedface0001",
	}, nil)

	if !strings.Contains(buf.String(), "none (up to date)") {
		t.Errorf("expected empty action list to render as up to date, got:\n%s", buf.String())
	}
}

func TestDisplay_SummaryFailure(t *testing.T) {
	buf := new(bytes.Buffer)
	d := NewDisplay(buf, false)

	d.Summary(&bootstrap.Result{Step: bootstrap.StepInit}, errors.New("postgres connect: connection refused"))

	output := buf.String()
	if !strings.Contains(output, "Bootstrap failed: postgres connect: connection refused") {
		t.Errorf("expected failure line, got:\n%s", output)
	}
	if strings.Contains(output, "Bootstrap complete") {
		t.Errorf("failure summary should not contain the success block, got:\n%s", output)
	}
}

func TestFormatActions(t *testing.T) {
	if got := formatActions(nil); got != "none (up to date)" {
		t.Errorf("formatActions(nil) = %q", got)
	}
	if got := formatActions([]bootstrap.Action{bootstrap.ActionInit}); got != "init" {
		t.Errorf("formatActions(init) = %q", got)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("shortID should truncate to 12 chars, got %q", got)
	}
	if got := shortID("short"); got != "short" {
		t.Errorf("shortID should leave short IDs alone, got %q", got)
	}
}
