package render

import (
	"bytes"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mithrel/chostmd/pkg/cohost"
)

// ArchiveURLPrefix is prepended to the canonical post URL to build the
// Wayback Machine lookup link.
const ArchiveURLPrefix = "https://web.archive.org/web/*/"

// FrontMatter is the document header. Keys are namespaced under "cohost/"
// so they do not collide with other Obsidian plugins.
type FrontMatter struct {
	Date         time.Time `yaml:"date"`
	Users        []string  `yaml:"cohost/users"`
	Tags         []string  `yaml:"cohost/tags,omitempty"`
	OriginalPost string    `yaml:"cohost/original-post"`
	ArchivedPost string    `yaml:"cohost/archived-post"`
}

// BuildFrontMatter walks the share tree once. Users start with the root
// author, then per ancestor the askers of its top-level questions followed
// by its author. Tags are the root's followed by every ancestor's.
func BuildFrontMatter(root cohost.Post, published time.Time) FrontMatter {
	users := newOrderedSet()
	users.Add(root.Author())
	tags := newOrderedSet()
	tags.AddAll(root.Tags)

	for _, anc := range root.ShareTree {
		for _, asker := range askers(anc.Blocks) {
			users.Add(asker)
		}
		users.Add(anc.Author())
		tags.AddAll(anc.Tags)
	}

	fm := FrontMatter{
		// Whole seconds, matching the datetime attribute of every <time> element.
		Date:         published.Truncate(time.Second),
		Users:        users.Items(),
		OriginalPost: root.SinglePostPageURL,
		ArchivedPost: ArchiveURLPrefix + root.SinglePostPageURL,
	}
	if tags.Len() > 0 {
		fm.Tags = tags.Items()
	}
	return fm
}

func askers(blocks cohost.Blocks) []string {
	var out []string
	for _, b := range blocks {
		// Groups render attachments only, so a question inside one is not counted.
		if q, ok := b.(cohost.Question); ok {
			out = append(out, q.Ask.Asker())
		}
	}
	return out
}

// Marshal renders the header between "---" fences.
func (fm FrontMatter) Marshal() (string, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	buf.WriteString("---\n")
	return buf.String(), nil
}
