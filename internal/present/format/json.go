package format

import (
	"encoding/json"
	"io"
)

func WriteJSONSummaries(w io.Writer, rows []Summary, indent bool) error {
	if rows == nil {
		rows = []Summary{}
	}
	return writeJSON(w, rows, indent)
}

func WriteJSONManifest(w io.Writer, rows []ManifestEntry, indent bool) error {
	if rows == nil {
		rows = []ManifestEntry{}
	}
	return writeJSON(w, rows, indent)
}

func WriteJSONDocument(w io.Writer, d Document, indent bool) error {
	return writeJSON(w, d, indent)
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
