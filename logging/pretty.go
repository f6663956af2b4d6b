package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// PrettyLogger prints the user-facing status lines of a recording, such as
// the URL being served and the file being recorded to.
type PrettyLogger struct {
	writer io.Writer
	styles PrettyStyles
	prefix string
}

// PrettyStyles contains lipgloss styles for different message kinds
type PrettyStyles struct {
	Prefix lipgloss.Style
	Info   lipgloss.Style
	Error  lipgloss.Style
	Value  lipgloss.Style
	Path   lipgloss.Style
}

// DefaultPrettyStyles returns the default styling for pretty output
func DefaultPrettyStyles() PrettyStyles {
	return PrettyStyles{
		Prefix: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),              // Gray
		Info:   lipgloss.NewStyle(),                                               // Plain
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),   // Red
		Value:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),  // Cyan
		Path:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true), // Dark cyan
	}
}

// PlainPrettyStyles renders everything unstyled, for non-terminal output.
func PlainPrettyStyles() PrettyStyles {
	plain := lipgloss.NewStyle()
	return PrettyStyles{plain, plain, plain, plain, plain}
}

// NewPrettyLogger creates a pretty logger whose lines start with [prefix].
// Styling is enabled only when stderr is a terminal.
func NewPrettyLogger(prefix string) *PrettyLogger {
	styles := PlainPrettyStyles()
	if StderrIsTerminal() {
		styles = DefaultPrettyStyles()
	}
	return &PrettyLogger{
		writer: defaultGlobalWriter,
		styles: styles,
		prefix: prefix,
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

// WithStyles replaces the styles.
func (p *PrettyLogger) WithStyles(s PrettyStyles) *PrettyLogger {
	p.styles = s
	return p
}

func (p *PrettyLogger) line(style lipgloss.Style, message string) {
	if p.prefix != "" {
		fmt.Fprintf(p.writer, "%s ", p.styles.Prefix.Render("["+p.prefix+"]"))
	}
	fmt.Fprintln(p.writer, style.Render(message))
}

// Error prints an error line, followed by err when non-nil.
func (p *PrettyLogger) Error(message string, err error) {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	p.line(p.styles.Error, message)
}

// Waiting announces the URL the server is expected on.
func (p *PrettyLogger) Waiting(url string) {
	p.line(p.styles.Info, fmt.Sprintf("Waiting for %s ...", p.styles.Value.Render(url)))
}

// Serving announces that the server is up.
func (p *PrettyLogger) Serving(url string, pid int) {
	p.line(p.styles.Info, fmt.Sprintf("Serving at %s (pid %d). Press Ctrl-C to stop.",
		p.styles.Value.Render(url), pid))
}

// Recording announces the output file and terminal size of a recording.
func (p *PrettyLogger) Recording(path string, cols, rows int) {
	p.line(p.styles.Info, fmt.Sprintf("Recording to: %s (size %dx%d)",
		p.styles.Path.Render(path), cols, rows))
}
