package format

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// DefaultStyle is the glamour style used when none is configured.
const DefaultStyle = "dracula"

// WriteMarkdown writes the document exactly as it would land on disk.
func WriteMarkdown(w io.Writer, d Document) error {
	_, err := io.WriteString(w, d.Markdown)
	return err
}

// WritePrettyDocument renders the document for a terminal using glamour.
// wrap <= 0 disables word wrapping.
func WritePrettyDocument(w io.Writer, d Document, style string, wrap int) error {
	if style == "" {
		style = DefaultStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(d.Markdown)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
