package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/veltran/swoop/pkg/domain"
)

// TraceRenderer prints a visit's hook timeline as it happens.
type TraceRenderer struct {
	out     io.Writer
	profile termenv.Profile
	start   time.Time
}

// NewTraceRenderer creates a renderer writing to out. Color degrades
// automatically on dumb terminals and pipes.
func NewTraceRenderer(out io.Writer) *TraceRenderer {
	return &TraceRenderer{
		out:     out,
		profile: termenv.NewOutput(out).ColorProfile(),
		start:   time.Now(),
	}
}

// Observe is a domain.Listener; hand it to the hook registry's Notify.
func (r *TraceRenderer) Observe(n domain.Notification) {
	elapsed := n.Timestamp.Sub(r.start).Round(time.Millisecond)

	stamp := termenv.String(fmt.Sprintf("%8s", elapsed)).
		Foreground(r.profile.Color("#6b7280"))
	name := termenv.String(string(n.Hook)).
		Foreground(r.profile.Color(hookColor(n.Hook)))

	detail := ""
	if n.Visit != nil {
		detail = fmt.Sprintf("  visit=%d %s", n.Visit.ID, n.Visit.ResolvedURL)
	}
	fmt.Fprintf(r.out, "%s  %s%s\n", stamp, name, detail)
}

// Summary prints the closing line for a finished visit.
func (r *TraceRenderer) Summary(url string, err error) {
	elapsed := time.Since(r.start).Round(time.Millisecond)
	if err != nil {
		line := termenv.String(fmt.Sprintf("✗ %s (%s): %v", url, elapsed, err)).
			Foreground(r.profile.Color("#f87171"))
		fmt.Fprintln(r.out, line)
		return
	}
	line := termenv.String(fmt.Sprintf("✓ %s (%s)", url, elapsed)).
		Foreground(r.profile.Color("#34d399"))
	fmt.Fprintln(r.out, line)
}

func hookColor(name domain.HookName) string {
	s := string(name)
	switch {
	case strings.HasPrefix(s, "visit:"):
		return "#818cf8"
	case strings.HasPrefix(s, "animation:"):
		return "#c084fc"
	case strings.HasPrefix(s, "fetch:"):
		return "#fbbf24"
	case strings.HasPrefix(s, "cache:"):
		return "#2dd4bf"
	default:
		return "#e5e7eb"
	}
}
