package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// TSV columns: index, post_id, filename, handle, published, tags
var headerLine = "index\tpost_id\tfilename\thandle\tpublished\ttags\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func joinTags(tags []string) string {
	// Join with commas; no spaces
	return strings.Join(tags, ",")
}

func WritePlainSummaries(w io.Writer, rows []Summary, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, r := range rows {
		published := ""
		if !r.PublishedAt.IsZero() {
			published = r.PublishedAt.Format(time.RFC3339)
		}
		line := fmt.Sprintf("%d\t%d\t%s\t@%s\t%s\t%s\n",
			r.Index+1, r.PostID, esc(r.Filename), esc(r.Handle), published, esc(joinTags(r.Tags)))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

var manifestHeaderLine = "post_id\tfilename\thash\texported_at\n"

func WritePlainManifest(w io.Writer, rows []ManifestEntry, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, manifestHeaderLine)
	}
	for _, r := range rows {
		line := fmt.Sprintf("%d\t%s\t%s\t%s\n",
			r.PostID, esc(r.Filename), r.Hash, r.ExportedAt.Format(time.RFC3339))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}
