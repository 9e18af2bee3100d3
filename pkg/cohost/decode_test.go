package cohost

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/share.json")
	require.NoError(t, err)
	return data
}

func TestDecodePostFixture(t *testing.T) {
	p, err := DecodePost(loadFixture(t))
	require.NoError(t, err)

	assert.Equal(t, int64(7807200), p.PostID)
	assert.Equal(t, "jkap", p.Author())
	assert.Equal(t, "jae kaplan", p.PostingProject.Name())
	assert.Equal(t, []string{"ask jae anything", "css crimes"}, p.Tags)
	require.Len(t, p.Blocks, 1)
	assert.Equal(t, TextContent{Content: "  this rules  \n"}, p.Blocks[0])

	require.Len(t, p.ShareTree, 1)
	anc := p.ShareTree[0]
	assert.Equal(t, "div style display", anc.Headline)
	require.Len(t, anc.Blocks, 4)

	q, ok := anc.Blocks[0].(Question)
	require.True(t, ok, "block 0 should be a question, got %T", anc.Blocks[0])
	assert.Equal(t, "eramdam", q.Ask.Asker())
	assert.False(t, q.Ask.IsAnonymous())

	row, ok := anc.Blocks[1].(AttachmentGroup)
	require.True(t, ok)
	require.Len(t, row.Members, 2)
	first := row.Members[0].(SingleAttachment).Attachment.(Image)
	require.NotNil(t, first.AltText)
	assert.Equal(t, "a grid", *first.AltText)
	second := row.Members[1].(SingleAttachment).Attachment.(Image)
	assert.Nil(t, second.AltText)

	au, ok := anc.Blocks[2].(SingleAttachment).Attachment.(Audio)
	require.True(t, ok)
	assert.Equal(t, "display: contents", au.Title)
	assert.Equal(t, "nex3", au.Artist)

	require.NotNil(t, anc.ResponseToAskID)
	assert.Equal(t, NumericID(12345), *anc.ResponseToAskID)
	assert.Nil(t, p.ResponseToAskID)
}

func TestSharedPostID(t *testing.T) {
	opaque, transparent := int64(10), int64(20)

	p := Post{}
	_, ok := p.SharedPostID()
	assert.False(t, ok)
	assert.False(t, p.IsShare())

	p.ShareOfPostID = &opaque
	id, ok := p.SharedPostID()
	assert.True(t, ok)
	assert.Equal(t, opaque, id)
	assert.False(t, p.IsTransparentShare())

	p.TransparentShareOfPostID = &transparent
	id, ok = p.SharedPostID()
	assert.True(t, ok)
	assert.Equal(t, transparent, id, "transparent id wins")
	assert.True(t, p.IsShare())
	assert.True(t, p.IsTransparentShare())
}

func TestAskAsker(t *testing.T) {
	proj := &AskingProject{Handle: "eramdam"}
	tests := []struct {
		name string
		ask  Ask
		want string
	}{
		{"anon flag", Ask{Anon: true, AskingProject: proj}, AnonymousAsker},
		{"no project", Ask{Anon: false}, AnonymousAsker},
		{"named", Ask{AskingProject: proj}, "eramdam"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ask.Asker())
		})
	}
}

func TestDecodePostRejects(t *testing.T) {
	base := string(loadFixture(t))
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			name:  "unknown block type",
			input: strings.Replace(base, `"type": "markdown", "markdown": {"content": "  this rules  \n"}`, `"type": "poll", "poll": {}`, 1),
			field: "blocks[0].type",
		},
		{
			name:  "unknown attachment kind",
			input: strings.Replace(base, `"kind": "audio"`, `"kind": "video"`, 1),
			field: "shareTree[0].blocks[2].attachment.kind",
		},
		{
			name:  "unknown ancestor block type",
			input: strings.Replace(base, `"type": "markdown", "markdown": {"content": "it's`, `"type": "poll", "markdown": {"content": "it's`, 1),
			field: "shareTree[0].blocks[3].type",
		},
		{
			name:  "mistyped ancestor tags",
			input: strings.Replace(base, `"tags": ["css crimes", "cohost"]`, `"tags": "css crimes"`, 1),
			field: "shareTree[0].tags",
		},
		{
			name:  "missing grouped image url",
			input: strings.Replace(base, `"fileURL": "https://staging.cohostcdn.org/attachment/a/one.png", `, ``, 1),
			field: "shareTree[0].blocks[1].attachments[0].attachment.fileURL",
		},
		{
			name:  "missing audio url",
			input: strings.Replace(base, `"fileURL": "https://staging.cohostcdn.org/attachment/c/song.mp3", `, ``, 1),
			field: "shareTree[0].blocks[2].attachment.fileURL",
		},
		{
			name:  "missing asker handle",
			input: strings.Replace(base, `"handle": "eramdam",`, ``, 1),
			field: "shareTree[0].blocks[0].ask.askingProject.handle",
		},
		{
			name:  "missing author handle",
			input: strings.Replace(base, `"handle": "jkap",`, ``, 1),
			field: "postingProject.handle",
		},
		{
			name:  "missing ancestor url",
			input: strings.Replace(base, `"singlePostPageUrl": "https://cohost.org/nex3/post/7807131-div-style-display",`, ``, 1),
			field: "shareTree[0].singlePostPageUrl",
		},
		{
			name:  "mistyped post id",
			input: strings.Replace(base, `"postId": 7807200`, `"postId": "seven"`, 1),
			field: "postId",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotEqual(t, base, tt.input, "fixture replacement did not apply")
			_, err := DecodePost([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))
			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.field, de.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDecodePostInvalidJSON(t *testing.T) {
	_, err := DecodePost([]byte(`{"postId": 1,`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestNestedAttachmentGroupDecodes(t *testing.T) {
	input := `[{"type":"attachment-row","attachments":[{"type":"attachment-row","attachments":[]}]}]`
	var bs Blocks
	require.NoError(t, bs.UnmarshalJSON([]byte(input)))
	require.Len(t, bs, 1)
	row := bs[0].(AttachmentGroup)
	require.Len(t, row.Members, 1)
	_, nested := row.Members[0].(AttachmentGroup)
	assert.True(t, nested)
}
