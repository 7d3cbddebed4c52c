package tui

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// PrintBanner outputs the ASCII art banner. Non-terminal stdout (pipes,
// CI logs) gets nothing.
func PrintBanner() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	p := termenv.ColorProfile()
	s1 := termenv.String(` _____      _____  ___  _ __`).Foreground(p.Color("#818cf8"))
	s2 := termenv.String(`/ __\ \ /\ / / _ \ / _ \| '_ \`).Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(`\__ \\ V  V / (_) | (_) | |_) |`).Foreground(p.Color("#c084fc"))
	s4 := termenv.String(`|___/ \_/\_/ \___/ \___/| .__/`).Foreground(p.Color("#e879f9"))
	s5 := termenv.String(`                        |_|`).Foreground(p.Color("#f472b6"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
