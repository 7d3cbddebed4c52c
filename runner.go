package swoop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/veltran/swoop/pkg/adapters/headless"
)

// Runner drives an Engine from line-oriented input: one URL per line,
// plus a few session commands. It decouples the engine from any
// particular frontend so the CLI and tests share the same loop.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	// Renderer transforms the page title line before output, e.g. for
	// ANSI styling. Nil prints plain text.
	Renderer func(string) (string, error)
}

// NewRunner creates a Runner. The caller must set Input and Output
// (usually os.Stdin and os.Stdout).
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the navigation loop until EOF or an exit command.
// Recognized commands: "back" and "forward" replay history moves,
// "exit"/"quit" end the session; anything else is visited as a URL.
func (r *Runner) Run(ctx context.Context, engine *Engine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintln(r.Output, "--- swoop session ---")
	}

	for {
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		line := strings.TrimSpace(text)

		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			if !r.Headless {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return nil
		case line == "back" || line == "forward":
			if err := r.move(ctx, engine, line); err != nil {
				fmt.Fprintf(r.Output, "error: %v\n", err)
			}
		default:
			if err := engine.Navigate(ctx, line); err != nil {
				fmt.Fprintf(r.Output, "error: %v\n", err)
				continue
			}
			r.printLocation(engine)
		}
	}
}

// move replays a history step. It needs a history implementation that
// can actually move; the built-in headless stack can.
func (r *Runner) move(ctx context.Context, engine *Engine, dir string) error {
	hist, ok := engine.History().(*headless.History)
	if !ok {
		return fmt.Errorf("history does not support %s", dir)
	}

	var entry headless.Entry
	var moved bool
	if dir == "back" {
		entry, moved = hist.Back()
	} else {
		entry, moved = hist.Forward()
	}
	if !moved {
		return fmt.Errorf("no entry to go %s to", dir)
	}

	if err := engine.PopState(ctx, PopStateEvent{URL: entry.URL, Controlled: entry.Controlled}); err != nil {
		return err
	}
	r.printLocation(engine)
	return nil
}

func (r *Runner) printLocation(engine *Engine) {
	line := fmt.Sprintf("%s  %s", engine.History().Current(), engine.Document().Title())
	if r.Renderer != nil {
		if rendered, err := r.Renderer(line); err == nil {
			line = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(line))
}
