package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/mithrel/chostmd/pkg/cohost"
)

// ShareMarker separates the sharer from the shared post in a share callout.
const ShareMarker = "⟲"

type calloutKind string

const (
	calloutPost    calloutKind = "post"
	calloutShare   calloutKind = "share"
	calloutAsk     calloutKind = "ask"
	calloutWarning calloutKind = "warning"
)

func (c Clock) postCallout(p cohost.Post, at time.Time) string {
	return fmt.Sprintf("> [!%s] %s\n> @%s %s\n\n",
		calloutPost, p.PostingProject.Name(), p.Author(), c.HTML(at))
}

// shareCallout is only emitted for a resolved target.
func (c Clock) shareCallout(p cohost.Post, at time.Time, target *cohost.Post) string {
	return fmt.Sprintf("> [!%s] %s\n> @%s %s %s %s (@%s)\n\n",
		calloutShare, p.PostingProject.Name(), p.Author(), c.HTML(at),
		ShareMarker, target.PostingProject.Name(), target.Author())
}

func warningCallout(cws []string) string {
	if len(cws) == 0 {
		return ""
	}
	return fmt.Sprintf("> [!%s] CW: %s\n\n", calloutWarning, strings.Join(cws, ", "))
}

// shareIndex maps post ids to the posts of one share tree.
type shareIndex map[int64]*cohost.Post

func newShareIndex(root *cohost.Post) shareIndex {
	idx := make(shareIndex)
	var walk func(posts []cohost.Post)
	walk = func(posts []cohost.Post) {
		for i := range posts {
			p := &posts[i]
			if _, ok := idx[p.PostID]; !ok {
				idx[p.PostID] = p
			}
			walk(p.ShareTree)
		}
	}
	walk(root.ShareTree)
	return idx
}

// resolve finds the post p reshares. A target that is itself a transparent
// share is followed to the post it collapses into. Missing links or loops
// leave the share unresolved.
func (idx shareIndex) resolve(p cohost.Post) (*cohost.Post, bool) {
	id, ok := p.SharedPostID()
	if !ok {
		return nil, false
	}
	visited := map[int64]bool{p.PostID: true}
	for {
		if visited[id] {
			return nil, false
		}
		visited[id] = true
		target, ok := idx[id]
		if !ok {
			return nil, false
		}
		if !target.IsTransparentShare() {
			return target, true
		}
		id, _ = target.SharedPostID()
	}
}
