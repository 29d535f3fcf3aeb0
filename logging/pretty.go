package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Prefix marks every user-facing diagnostic line.
const Prefix = "[reload]"

// PrettyLogger provides pretty formatted console output
type PrettyLogger struct {
	writer io.Writer
	styles PrettyStyles
}

// PrettyStyles contains lipgloss styles for different log types
type PrettyStyles struct {
	Prefix  lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Path    lipgloss.Style
	Code    lipgloss.Style
}

// DefaultPrettyStyles returns the default styling for pretty logs
func DefaultPrettyStyles() PrettyStyles {
	return PrettyStyles{
		Prefix:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),              // Gray
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),             // Blue
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),             // Yellow
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),   // Red
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true), // Dark cyan
		Code:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),              // Magenta
	}
}

// NewPrettyLogger creates a pretty logger writing to the global output.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{
		writer: GetGlobalOutput(),
		styles: DefaultPrettyStyles(),
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

// line writes one complete line in a single Write call so concurrent rules
// never interleave within a line.
func (p *PrettyLogger) line(body string) {
	io.WriteString(p.writer, p.styles.Prefix.Render(Prefix)+" "+body+"\n") //nolint:errcheck // diagnostics are best effort
}

// Command announces a (re)start of argv.
func (p *PrettyLogger) Command(argv []string) {
	p.line(p.styles.Code.Render(strings.Join(argv, " ")))
}

// Reloading announces that a change to path triggered a reload.
func (p *PrettyLogger) Reloading(path string) {
	p.line(fmt.Sprintf("Reloading from '%s'", p.styles.Path.Render(path)))
}

// InfoPretty logs an info message with pretty formatting
func (p *PrettyLogger) InfoPretty(message string) {
	p.line(p.styles.Info.Render(message))
}

// WarnPretty logs a warning with pretty formatting
func (p *PrettyLogger) WarnPretty(message string) {
	p.line(p.styles.Warning.Render("⚠ " + message))
}

// ErrorPretty logs an error with pretty formatting
func (p *PrettyLogger) ErrorPretty(message string, err error) {
	body := p.styles.Error.Render("✗ " + message)
	if err != nil {
		body += ": " + p.styles.Error.Render(err.Error())
	}
	p.line(body)
}
