// Package ui provides styled console output for the human-facing
// listing commands. Machine-facing commands write protocol JSON and
// never go through this package.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	releaseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	snapshotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// UI provides console output helpers
type UI struct {
	out io.Writer
	err io.Writer
}

// NewUI creates a new UI instance
func NewUI() *UI {
	return &UI{
		out: os.Stdout,
		err: os.Stderr,
	}
}

// Success prints a success message
func (ui *UI) Success(msg string) {
	fmt.Fprintln(ui.out, successStyle.Render("✓ "+msg))
}

// Error prints an error message
func (ui *UI) Error(msg string) {
	fmt.Fprintln(ui.err, errorStyle.Render("✗ "+msg))
}

// Header prints a section header
func (ui *UI) Header(title string) {
	fmt.Fprintln(ui.out, headerStyle.Render(title))
}

// KeyValue prints a key-value pair
func (ui *UI) KeyValue(key, value string) {
	fmt.Fprintf(ui.out, "  %s: %s\n", subtleStyle.Render(key), value)
}

// Version prints one version entry, colored by release type.
func (ui *UI) Version(id, versionType string) {
	style := snapshotStyle
	if versionType == "release" {
		style = releaseStyle
	}
	fmt.Fprintf(ui.out, "  %s %s\n", style.Render(id), subtleStyle.Render(versionType))
}

// Subtle prints a muted message
func (ui *UI) Subtle(msg string) {
	fmt.Fprintln(ui.out, subtleStyle.Render(msg))
}
