package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Status is the outcome shown after a progress line.
type Status int

const (
	StatusNone Status = iota
	StatusWritten
	StatusUnchanged
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return ""
	}
}

type styles struct {
	index   lipgloss.Style
	handle  lipgloss.Style
	written lipgloss.Style
	skipped lipgloss.Style
	failed  lipgloss.Style
	done    lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		index:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		handle:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		written: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		skipped: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		done:    lipgloss.NewStyle().Bold(true),
	}
}

// Progress prints one line per post, "[001] filename (@handle)".
type Progress struct {
	w      io.Writer
	styles styles
}

// NewProgress styles output only when w is a terminal.
func NewProgress(w io.Writer) *Progress {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Progress{w: w, styles: newStyles(color)}
}

// Line formats the progress line for the post at zero-based index i.
func (p *Progress) Line(i int, filename, handle string, st Status) string {
	s := p.styles
	line := fmt.Sprintf("%s %s %s",
		s.index.Render(fmt.Sprintf("[%03d]", i+1)),
		filename,
		s.handle.Render("(@"+handle+")"))
	switch st {
	case StatusWritten:
		line += " " + s.written.Render(st.String())
	case StatusUnchanged:
		line += " " + s.skipped.Render(st.String())
	case StatusFailed:
		line += " " + s.failed.Render(st.String())
	}
	return line
}

func (p *Progress) Item(i int, filename, handle string, st Status) {
	fmt.Fprintln(p.w, p.Line(i, filename, handle, st))
}

// Summary prints the totals of a batch, then "done!".
func (p *Progress) Summary(written, unchanged, failed int) {
	counts := fmt.Sprintf("%d written, %d unchanged", written, unchanged)
	if failed > 0 {
		counts += ", " + p.styles.failed.Render(fmt.Sprintf("%d failed", failed))
	}
	fmt.Fprintln(p.w, counts)
	fmt.Fprintln(p.w, p.styles.done.Render("done!"))
}
