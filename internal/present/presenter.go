package present

import (
	"fmt"
	"io"

	"github.com/mithrel/chostmd/internal/present/format"
)

type (
	Document      = format.Document
	Summary       = format.Summary
	ManifestEntry = format.ManifestEntry
)

type Mode int

const (
	ModeMarkdown Mode = iota
	ModePretty
	ModePlain
	ModeJSON
	ModeNDJSON
)

func (m Mode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	case ModeNDJSON:
		return "ndjson"
	default:
		return "markdown"
	}
}

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	// Style and WordWrap configure pretty output.
	Style    string
	WordWrap int
}

// ParseMode parses "markdown", "pretty", "plain", "json" or "ndjson".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "markdown", "md", "":
		return ModeMarkdown, true
	case "pretty":
		return ModePretty, true
	case "plain":
		return ModePlain, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	default:
		return ModeMarkdown, false
	}
}

// RenderDocument writes one rendered post according to options.
func RenderDocument(w io.Writer, d Document, opts Options) error {
	switch opts.Mode {
	case ModePretty:
		return format.WritePrettyDocument(w, d, opts.Style, opts.WordWrap)
	case ModeJSON, ModeNDJSON:
		return format.WriteJSONDocument(w, d, opts.JSONIndent && opts.Mode == ModeJSON)
	case ModeMarkdown, ModePlain:
		return format.WriteMarkdown(w, d)
	default:
		return fmt.Errorf("unsupported output mode %v", opts.Mode)
	}
}

// RenderSummaries writes a post listing. Pretty and markdown fall back to plain.
func RenderSummaries(w io.Writer, rows []Summary, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONSummaries(w, rows, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONSummaries(w, rows)
	default:
		return format.WritePlainSummaries(w, rows, opts.Headers)
	}
}

// RenderManifest writes manifest entries. Pretty and markdown fall back to plain.
func RenderManifest(w io.Writer, rows []ManifestEntry, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONManifest(w, rows, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONManifest(w, rows)
	default:
		return format.WritePlainManifest(w, rows, opts.Headers)
	}
}
