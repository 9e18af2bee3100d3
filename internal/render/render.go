package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mithrel/chostmd/pkg/cohost"
)

// Renderer turns a post and its share tree into one Markdown document.
// It holds no per-post state and is safe for concurrent use.
type Renderer struct {
	Clock Clock
}

// NewRenderer returns a renderer that displays times in loc (time.Local when nil).
func NewRenderer(loc *time.Location) *Renderer {
	return &Renderer{Clock: Clock{Location: loc}}
}

// Render renders p with times in the local timezone.
func Render(p cohost.Post) (string, error) {
	return NewRenderer(time.Local).Render(p)
}

// Render produces the document for p: front matter, the share callout when
// the reshared post resolves, every visible ancestor, then p itself.
func (r *Renderer) Render(p cohost.Post) (string, error) {
	published, err := r.Clock.Parse(p.PublishedAt)
	if err != nil {
		return "", &Error{PostID: p.PostID, Field: "publishedAt", Err: err}
	}

	var b strings.Builder
	fm, err := BuildFrontMatter(p, published).Marshal()
	if err != nil {
		return "", &Error{PostID: p.PostID, Field: "front matter", Err: fmt.Errorf("%w: %v", ErrWriteFailure, err)}
	}
	b.WriteString(fm)
	b.WriteString("\n")

	if p.IsShare() {
		idx := newShareIndex(&p)
		if target, ok := idx.resolve(p); ok {
			b.WriteString(r.Clock.shareCallout(p, published, target))
		}
	}

	for i, anc := range p.ShareTree {
		// Transparent shares are collapsed into the post they share.
		if anc.IsTransparentShare() {
			continue
		}
		if err := r.renderSection(&b, anc); err != nil {
			return "", withPost(p.PostID, fmt.Sprintf("shareTree[%d]", i), err)
		}
	}
	if err := r.renderSectionAt(&b, p, published); err != nil {
		return "", withPost(p.PostID, "", err)
	}

	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

// RenderTo renders p and writes the whole document to w in one call, so a
// failed render never leaves a partial document behind.
func (r *Renderer) RenderTo(w io.Writer, p cohost.Post) error {
	doc, err := r.Render(p)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, doc); err != nil {
		return &Error{PostID: p.PostID, Err: fmt.Errorf("%w: %v", ErrWriteFailure, err)}
	}
	return nil
}

func (r *Renderer) renderSection(b *strings.Builder, p cohost.Post) error {
	published, err := r.Clock.Parse(p.PublishedAt)
	if err != nil {
		return &Error{PostID: p.PostID, Field: "publishedAt", Err: err}
	}
	return r.renderSectionAt(b, p, published)
}

func (r *Renderer) renderSectionAt(b *strings.Builder, p cohost.Post, published time.Time) error {
	b.WriteString(r.Clock.postCallout(p, published))
	b.WriteString(warningCallout(p.CWs))
	if h := strings.TrimSpace(p.Headline); h != "" {
		b.WriteString("# " + h + "\n\n")
	}
	if err := r.renderBlocks(b, p.Blocks); err != nil {
		return err
	}
	b.WriteString(tagLine(p.Tags))
	return nil
}

// withPost stamps the root post id and the location of the failure.
func withPost(postID int64, prefix string, err error) error {
	re, ok := err.(*Error)
	if !ok {
		return &Error{PostID: postID, Field: prefix, Err: err}
	}
	field := re.Field
	if prefix != "" {
		if field != "" {
			field = prefix + "." + field
		} else {
			field = prefix
		}
	}
	return &Error{PostID: postID, Field: field, Err: re.Err}
}
