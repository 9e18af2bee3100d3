package format

import (
	"encoding/json"
	"io"
)

// WriteNDJSONSummaries writes rows as newline-delimited JSON objects.
func WriteNDJSONSummaries(w io.Writer, rows []Summary) error {
	return writeNDJSON(w, rows)
}

// WriteNDJSONManifest writes manifest entries one object per line.
func WriteNDJSONManifest(w io.Writer, rows []ManifestEntry) error {
	return writeNDJSON(w, rows)
}

func writeNDJSON[T any](w io.Writer, rows []T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
