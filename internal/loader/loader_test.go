package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/chostmd/pkg/cohost"
)

func post(id int, handle string) string {
	return `{"postId": ` + itoa(id) + `, "publishedAt": "2024-09-23T04:25:00Z", "filename": "` + itoa(id) + `-post",
"postingProject": {"handle": "` + handle + `"}, "singlePostPageUrl": "https://cohost.org/` + handle + `/post/` + itoa(id) + `-post",
"blocks": [{"type": "markdown", "markdown": {"content": "hi"}}], "shareTree": [], "tags": []}`
}

func itoa(i int) string { return strconv.Itoa(i) }

func collect(t *testing.T, input string, format Format) ([]Record, error) {
	t.Helper()
	var out []Record
	err := Load(strings.NewReader(input), format, func(r Record) error {
		out = append(out, r)
		return nil
	})
	return out, err
}

func TestLoadArray(t *testing.T) {
	input := "\n  [" + post(1, "nex3") + ",\n" + post(2, "jkap") + "]\n"
	recs, err := collect(t, input, FormatAuto)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 0, recs[0].Index)
	assert.Equal(t, "nex3", recs[0].Post.Author())
	assert.Equal(t, int64(2), recs[1].Post.PostID)
}

func TestLoadNDJSON(t *testing.T) {
	input := strings.ReplaceAll(post(1, "nex3"), "\n", " ") + "\n\n" + strings.ReplaceAll(post(2, "jkap"), "\n", " ") + "\n"
	recs, err := collect(t, input, FormatNDJSON)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[1].Index)
	assert.Equal(t, "jkap", recs[1].Post.Author())
}

func TestLoadBadRecordDoesNotStopBatch(t *testing.T) {
	bad := `{"postId": 3, "publishedAt": "2024-09-23T04:25:00Z", "filename": "x", "postingProject": {"handle": "a"}, "singlePostPageUrl": "u", "blocks": [{"type": "poll"}]}`
	input := "[" + post(1, "nex3") + "," + bad + "," + post(2, "jkap") + "]"
	recs, err := collect(t, input, FormatArray)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.NoError(t, recs[0].Err)
	require.Error(t, recs[1].Err)
	assert.True(t, errors.Is(recs[1].Err, cohost.ErrMalformedInput))
	assert.Contains(t, recs[1].Err.Error(), "record 1")
	assert.Contains(t, recs[1].Err.Error(), "blocks[0].type")
	assert.NoError(t, recs[2].Err)
}

func TestLoadFormatMismatch(t *testing.T) {
	_, err := collect(t, "["+post(1, "nex3")+"]", FormatNDJSON)
	assert.Error(t, err)
	_, err = collect(t, strings.ReplaceAll(post(1, "nex3"), "\n", " "), FormatArray)
	assert.Error(t, err)
}

func TestLoadTruncatedArrayIsFatal(t *testing.T) {
	_, err := collect(t, "["+post(1, "nex3")+",", FormatAuto)
	assert.Error(t, err)
}

func TestLoadEmpty(t *testing.T) {
	recs, err := collect(t, "  \n", FormatAuto)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLoadCallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := Load(strings.NewReader("["+post(1, "a")+","+post(2, "b")+"]"), FormatAuto, func(Record) error {
		n++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, n)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liked.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.ReplaceAll(post(4, "nex3"), "\n", " ")+"\n"), 0o600))
	recs, err := ReadFile(path, FormatAuto)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "4-post", recs[0].Post.Filename)
}
