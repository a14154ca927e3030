package publish

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Console prints release progress with a glyph and colour per message kind.
type Console struct {
	w       io.Writer
	title   lipgloss.Style
	step    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	info    lipgloss.Style
}

// NewConsole returns a Console writing to w. Colour is detected from w and
// disabled when NO_COLOR is set.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	if os.Getenv("NO_COLOR") != "" {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Console{
		w:       w,
		title:   r.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		step:    r.NewStyle().Foreground(lipgloss.Color("6")),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")),
		info:    r.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// Title prints a banner line.
func (c *Console) Title(format string, args ...any) {
	fmt.Fprintln(c.w, c.title.Render(fmt.Sprintf(format, args...)))
}

// Step announces a release step.
func (c *Console) Step(format string, args ...any) {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, c.step.Render("📋 "+fmt.Sprintf(format, args...)))
}

// Success reports a completed check or action.
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.w, c.success.Render("✅ "+fmt.Sprintf(format, args...)))
}

// Warn reports a non-fatal problem.
func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintln(c.w, c.warn.Render("⚠️  "+fmt.Sprintf(format, args...)))
}

// Error reports a fatal problem.
func (c *Console) Error(format string, args ...any) {
	fmt.Fprintln(c.w, c.fail.Render("❌ "+fmt.Sprintf(format, args...)))
}

// Info prints a highlighted informational line.
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintln(c.w, c.info.Render(fmt.Sprintf(format, args...)))
}

// Plain prints an unstyled line.
func (c *Console) Plain(format string, args ...any) {
	fmt.Fprintf(c.w, format+"\n", args...)
}
