package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/RevCBH/pgbox/internal/bootstrap"
	"github.com/RevCBH/pgbox/internal/events"
	"github.com/charmbracelet/lipgloss"
)

// StatusSymbol marks a rendered event line
type StatusSymbol string

const (
	SymbolComplete   StatusSymbol = "✓"
	SymbolInProgress StatusSymbol = "●"
	SymbolFailed     StatusSymbol = "✗"
)

// Styles contains the lipgloss styles for terminal output
type Styles struct {
	OK   lipgloss.Style
	Busy lipgloss.Style
	Fail lipgloss.Style
	Dim  lipgloss.Style
}

// DefaultStyles returns the standard color palette
func DefaultStyles() Styles {
	return Styles{
		OK:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Busy: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Fail: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Display renders bootstrap events as progress lines
type Display struct {
	out    io.Writer
	styles Styles
	color  bool
}

// NewDisplay creates a display writing to out. Styling is applied only
// when color is true.
func NewDisplay(out io.Writer, color bool) *Display {
	return &Display{
		out:    out,
		styles: DefaultStyles(),
		color:  color,
	}
}

// Handler returns an event handler that renders each event
func (d *Display) Handler() events.Handler {
	return func(e events.Event) {
		if line := d.renderEvent(e); line != "" {
			fmt.Fprintln(d.out, line)
		}
	}
}

// renderEvent formats a single event. Event types with no terminal
// representation render as the empty string; the summary block covers
// the bootstrap lifecycle events.
func (d *Display) renderEvent(e events.Event) string {
	switch e.Type {
	case events.ImageBuildStarted:
		return d.line(SymbolInProgress, d.styles.Busy, fmt.Sprintf("building image %v", e.Payload))
	case events.ImageBuilt:
		return d.line(SymbolComplete, d.styles.OK, fmt.Sprintf("image %v built", e.Payload))
	case events.ContainerLaunched:
		return d.line(SymbolComplete, d.styles.OK, fmt.Sprintf("container %s launched", shortID(e.Container)))
	case events.ContainerReused:
		return d.line(SymbolComplete, d.styles.OK, fmt.Sprintf("reusing running container %s", shortID(e.Container)))
	case events.DBSettling:
		return d.line(SymbolInProgress, d.styles.Busy, fmt.Sprintf("waiting %v for postgres to come up", e.Payload))
	case events.DBConnectRetry:
		return d.line(SymbolInProgress, d.styles.Busy, fmt.Sprintf("retrying connection (attempt %v)", e.Payload))
	case events.DBConnected:
		return d.line(SymbolComplete, d.styles.OK, "connected to postgres")
	case events.SQLApplied:
		return d.line(SymbolComplete, d.styles.OK, fmt.Sprintf("%v sql applied", e.Payload))
	case events.ContainerKilled:
		return d.line(SymbolFailed, d.styles.Fail, fmt.Sprintf("killed container %s", shortID(e.Container)))
	default:
		return ""
	}
}

// line renders a symbol-prefixed line, styled when color is enabled
func (d *Display) line(sym StatusSymbol, style lipgloss.Style, msg string) string {
	s := fmt.Sprintf("%s %s", sym, msg)
	if d.color {
		return style.Render(s)
	}
	return s
}

// Summary prints the final outcome block after a bootstrap run
func (d *Display) Summary(result *bootstrap.Result, err error) {
	if err != nil {
		msg := fmt.Sprintf("Bootstrap failed: %v", err)
		if d.color {
			msg = d.styles.Fail.Render(msg)
		}
		fmt.Fprintf(d.out, "\n%s\n", msg)
		return
	}

	fmt.Fprintf(d.out, "\nBootstrap complete:\n")
	fmt.Fprintf(d.out, "  Step:      %s\n", result.Step)
	fmt.Fprintf(d.out, "  Actions:   %s\n", formatActions(result.Actions))
	if result.ContainerID != "" {
		fmt.Fprintf(d.out, "  Container: %s\n", shortID(result.ContainerID))
	}
	fmt.Fprintf(d.out, "  Duration:  %s\n", result.Duration.Round(time.Millisecond))
}

// formatActions joins performed actions for the summary line
func formatActions(actions []bootstrap.Action) string {
	if len(actions) == 0 {
		return "none (up to date)"
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}

// shortID truncates a container ID to the usual 12 characters
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
