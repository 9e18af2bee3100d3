package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/mithrel/chostmd/pkg/cohost"
)

// ProfileURLPrefix is prepended to a handle to link to its cohost page.
const ProfileURLPrefix = "https://cohost.org/"

var (
	altEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, "\r\n", " ", "\n", " ")
	urlEscaper = strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29")
)

// renderBlocks writes each block followed by a blank line.
func (r *Renderer) renderBlocks(b *strings.Builder, blocks cohost.Blocks) error {
	for i, blk := range blocks {
		if err := r.renderBlock(b, blk); err != nil {
			return prefixBlockErr(fmt.Sprintf("blocks[%d]", i), err)
		}
	}
	return nil
}

func (r *Renderer) renderBlock(b *strings.Builder, blk cohost.Block) error {
	switch v := blk.(type) {
	case cohost.TextContent:
		text := strings.TrimSpace(v.Content)
		if text == "" {
			return nil
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	case cohost.SingleAttachment:
		renderAttachment(b, v.Attachment)
	case cohost.AttachmentGroup:
		for _, m := range v.Members {
			// Groups only hold attachments; anything deeper renders empty.
			if a, ok := m.(cohost.SingleAttachment); ok {
				renderAttachment(b, a.Attachment)
			}
		}
	case cohost.Question:
		return r.renderAsk(b, v.Ask)
	}
	return nil
}

func renderAttachment(b *strings.Builder, a cohost.Attachment) {
	switch v := a.(type) {
	case cohost.Image:
		alt := ""
		if v.AltText != nil {
			alt = altEscaper.Replace(*v.AltText)
		}
		fmt.Fprintf(b, "![%s](%s)\n\n", alt, urlEscaper.Replace(a.URL()))
	case cohost.Audio:
		u := html.EscapeString(a.URL())
		fmt.Fprintf(b, "<figure>\n")
		fmt.Fprintf(b, "  <audio controls src=\"%s\"></audio>\n", u)
		fmt.Fprintf(b, "  <figcaption>\n")
		fmt.Fprintf(b, "    %s<br>\n", html.EscapeString(v.Title))
		fmt.Fprintf(b, "    %s\n", html.EscapeString(v.Artist))
		fmt.Fprintf(b, "  </figcaption>\n")
		fmt.Fprintf(b, "  <a href=\"%s\">%s</a>\n", u, u)
		fmt.Fprintf(b, "</figure>\n\n")
	}
}

func (r *Renderer) renderAsk(b *strings.Builder, a cohost.Ask) error {
	sent, err := r.Clock.Parse(a.SentAt)
	if err != nil {
		return &Error{Field: "ask.sentAt", Err: err}
	}
	asker := cohost.AnonymousAsker
	if !a.IsAnonymous() {
		h := a.AskingProject.Handle
		asker = fmt.Sprintf("[@%s](%s%s)", h, ProfileURLPrefix, h)
	}
	fmt.Fprintf(b, "> [!%s] %s asked: %s\n", calloutAsk, asker, r.Clock.HTML(sent))
	for _, line := range strings.Split(strings.TrimRight(a.Content, "\r\n"), "\n") {
		b.WriteString("> ")
		b.WriteString(strings.TrimRight(line, "\r"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return nil
}

// tagLine renders "#tag #other"; whitespace inside a tag becomes "-".
func tagLine(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		words := strings.Fields(t)
		if len(words) == 0 {
			continue
		}
		parts = append(parts, "#"+strings.Join(words, "-"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + "\n\n"
}

func prefixBlockErr(prefix string, err error) error {
	if re, ok := err.(*Error); ok {
		return &Error{PostID: re.PostID, Field: prefix + "." + re.Field, Err: re.Err}
	}
	return &Error{Field: prefix, Err: err}
}
