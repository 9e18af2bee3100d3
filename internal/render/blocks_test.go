package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/chostmd/pkg/cohost"
)

func renderOne(t *testing.T, blk cohost.Block) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, testRenderer().renderBlock(&b, blk))
	return b.String()
}

func TestRenderTextContent(t *testing.T) {
	got := renderOne(t, cohost.TextContent{Content: "\n  *hi* <b>there</b>  \n"})
	assert.Equal(t, "*hi* <b>there</b>\n\n", got)
}

func TestRenderBlankTextContentSkipped(t *testing.T) {
	assert.Empty(t, renderOne(t, cohost.TextContent{Content: " \n\t "}))

	p := newPost(1, "nex3", cohost.TextContent{Content: "one"}, cohost.TextContent{}, cohost.TextContent{Content: "two"})
	out, err := testRenderer().Render(p)
	require.NoError(t, err)
	assert.Contains(t, out, "\none\n\ntwo\n")
}

func TestRenderImage(t *testing.T) {
	tests := []struct {
		name string
		img  cohost.Image
		want string
	}{
		{"nil alt", cohost.Image{FileURL: "https://x/a.png"}, "![](https://x/a.png)\n\n"},
		{"empty alt", cohost.Image{FileURL: "https://x/a.png", AltText: ptr("")}, "![](https://x/a.png)\n\n"},
		{"alt", cohost.Image{FileURL: "https://x/a.png", AltText: ptr("a cat")}, "![a cat](https://x/a.png)\n\n"},
		{"escaped alt", cohost.Image{FileURL: "https://x/a.png", AltText: ptr("[x]\nline")}, `![\[x\] line](https://x/a.png)` + "\n\n"},
		{"escaped url", cohost.Image{FileURL: "https://x/a b(1).png"}, "![](https://x/a%20b%281%29.png)\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderOne(t, cohost.SingleAttachment{Attachment: tt.img}))
		})
	}
}

func TestRenderAudio(t *testing.T) {
	got := renderOne(t, cohost.SingleAttachment{Attachment: cohost.Audio{
		FileURL: "https://x/song.mp3?a=1&b=2",
		Title:   "Rock & Roll",
		Artist:  "<nex3>",
	}})
	want := "<figure>\n" +
		"  <audio controls src=\"https://x/song.mp3?a=1&amp;b=2\"></audio>\n" +
		"  <figcaption>\n" +
		"    Rock &amp; Roll<br>\n" +
		"    &lt;nex3&gt;\n" +
		"  </figcaption>\n" +
		"  <a href=\"https://x/song.mp3?a=1&amp;b=2\">https://x/song.mp3?a=1&amp;b=2</a>\n" +
		"</figure>\n\n"
	assert.Equal(t, want, got)
}

func TestRenderAttachmentGroup(t *testing.T) {
	group := cohost.AttachmentGroup{Members: cohost.Blocks{
		cohost.SingleAttachment{Attachment: cohost.Image{FileURL: "https://x/1.png"}},
		cohost.AttachmentGroup{Members: cohost.Blocks{
			cohost.SingleAttachment{Attachment: cohost.Image{FileURL: "https://x/nested.png"}},
		}},
		cohost.SingleAttachment{Attachment: cohost.Image{FileURL: "https://x/2.png"}},
	}}
	got := renderOne(t, group)
	assert.Equal(t, "![](https://x/1.png)\n\n![](https://x/2.png)\n\n", got)
}

func TestRenderAsk(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		got := renderOne(t, cohost.Question{Ask: cohost.Ask{
			Anon:          true,
			AskingProject: &cohost.AskingProject{Handle: "hidden"},
			Content:       "who are you?",
			SentAt:        "2025-01-01T12:45:00Z",
		}})
		assert.Equal(t, "> [!ask] Anonymous User asked: <time datetime=\"2025-01-01T14:45:00+02:00\">Wed, Jan 01, 2025 at 14:45</time>\n> who are you?\n\n", got)
		assert.NotContains(t, got, "hidden")
	})
	t.Run("named", func(t *testing.T) {
		got := renderOne(t, cohost.Question{Ask: cohost.Ask{
			AskingProject: &cohost.AskingProject{Handle: "eramdam"},
			Content:       "line one\nline two\n",
			SentAt:        "2025-01-01T12:45:00.123Z",
		}})
		assert.True(t, strings.HasPrefix(got, "> [!ask] [@eramdam](https://cohost.org/eramdam) asked: <time"), "got %q", got)
		assert.True(t, strings.HasSuffix(got, "\n> line one\n> line two\n\n"), "got %q", got)
	})
	t.Run("bad timestamp", func(t *testing.T) {
		var b strings.Builder
		err := testRenderer().renderBlock(&b, cohost.Question{Ask: cohost.Ask{Anon: true, SentAt: "nope"}})
		assert.ErrorIs(t, err, ErrUnresolvedTimestamp)
	})
}

func TestTagLine(t *testing.T) {
	assert.Equal(t, "", tagLine(nil))
	assert.Equal(t, "", tagLine([]string{"  "}))
	assert.Equal(t, "#ask\n\n", tagLine([]string{"ask"}))
	assert.Equal(t, "#ask-jae-anything #css\n\n", tagLine([]string{"ask jae  anything", "css"}))
}
