// Package cliui provides shared terminal styles and a step indicator for
// recall CLI commands.
package cliui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")

	KeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	ValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	DimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Step runs fn behind an animated spinner line, then rewrites the line
// with a ✓ or ✗ and the elapsed time.
func Step(w io.Writer, msg string, fn func() error) error {
	done := make(chan struct{})
	spun := make(chan struct{})

	go spin(w, msg, done, spun)

	start := time.Now()
	err := fn()

	close(done)
	<-spun

	fmt.Fprintf(w, "\r  %s %s %s\n",
		Mark(err), msg, DimStyle.Render("("+FormatDuration(time.Since(start))+")"))

	return err
}

// spin redraws the spinner line until done closes, then signals spun so
// the final line never races a partial frame.
func spin(w io.Writer, msg string, done <-chan struct{}, spun chan<- struct{}) {
	defer close(spun)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		fmt.Fprintf(w, "\r  %s %s",
			spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)]), msg)

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// Mark returns ✓ for a nil error, ✗ otherwise.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration renders a duration for display, "12ms" or "3.2s".
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
