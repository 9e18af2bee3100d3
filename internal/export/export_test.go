package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mithrel/chostmd/internal/db"
	"github.com/mithrel/chostmd/internal/loader"
	"github.com/mithrel/chostmd/internal/render"
	"github.com/mithrel/chostmd/pkg/cohost"
)

func rec(i int, id int64, slug string, content string) loader.Record {
	return loader.Record{Index: i, Post: cohost.Post{
		PostID:            id,
		PublishedAt:       "2024-09-23T04:25:00.000Z",
		Filename:          slug,
		PostingProject:    cohost.Project{Handle: "nex3"},
		Blocks:            cohost.Blocks{cohost.TextContent{Content: content}},
		SinglePostPageURL: "https://cohost.org/nex3/post/" + slug,
	}}
}

func newExporter(t *testing.T, store db.Store) (*Exporter, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return &Exporter{
		OutDir:   filepath.Join(t.TempDir(), "out"),
		Workers:  4,
		Renderer: render.NewRenderer(time.UTC),
		Store:    store,
		Log:      zap.New(core),
		Now:      func() time.Time { return time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC) },
	}, logs
}

func memStore(t *testing.T) db.Store {
	t.Helper()
	s, err := db.Open(context.Background(), "mem:")
	require.NoError(t, err)
	return s
}

func TestRunWritesFilesInOrder(t *testing.T) {
	store := memStore(t)
	e, _ := newExporter(t, store)
	recs := []loader.Record{rec(0, 1, "1-first", "one"), rec(1, 2, "2-second", "two"), rec(2, 3, "3-third", "three")}

	res, err := e.Run(context.Background(), recs)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Written)
	assert.Empty(t, res.Failed)
	require.Len(t, res.Items, 3)
	for i, it := range res.Items {
		assert.Equal(t, i, it.Index)
		assert.Equal(t, Written, it.Outcome)
	}

	data, err := os.ReadFile(filepath.Join(e.OutDir, "2-second.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\n"))
	assert.Contains(t, string(data), "\ntwo\n")

	m, err := store.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "2-second.md", m.Filename)
	assert.Equal(t, Hash(string(data)), m.Hash)

	leftovers, _ := filepath.Glob(filepath.Join(e.OutDir, ".*.tmp"))
	assert.Empty(t, leftovers)
}

func TestRunSkipsUnchanged(t *testing.T) {
	store := memStore(t)
	e, _ := newExporter(t, store)
	recs := []loader.Record{rec(0, 1, "1-first", "one")}

	_, err := e.Run(context.Background(), recs)
	require.NoError(t, err)
	res, err := e.Run(context.Background(), recs)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Written)
	assert.Equal(t, 1, res.Unchanged)

	e.Overwrite = true
	res, err = e.Run(context.Background(), recs)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Written)

	// a deleted file is written again even when the hash matches
	e.Overwrite = false
	require.NoError(t, os.Remove(filepath.Join(e.OutDir, "1-first.md")))
	res, err = e.Run(context.Background(), recs)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Written)

	// changed content is rewritten
	res, err = e.Run(context.Background(), []loader.Record{rec(0, 1, "1-first", "edited")})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Written)
}

func TestRunWithoutStoreAlwaysWrites(t *testing.T) {
	e, _ := newExporter(t, nil)
	recs := []loader.Record{rec(0, 1, "1-first", "one")}
	for range 2 {
		res, err := e.Run(context.Background(), recs)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Written)
	}
}

func TestRunCollectsFailures(t *testing.T) {
	e, logs := newExporter(t, memStore(t))
	bad := rec(1, 2, "2-bad", "x")
	bad.Post.PublishedAt = "whenever"
	decodeErr := loader.Record{Index: 2, Err: errors.New("record 2: malformed")}
	dup := rec(3, 4, "1-first", "again")

	res, err := e.Run(context.Background(), []loader.Record{rec(0, 1, "1-first", "one"), bad, decodeErr, dup})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Written)
	require.Len(t, res.Failed, 3)

	assert.ErrorIs(t, res.Failed[0].Err, render.ErrUnresolvedTimestamp)
	assert.Equal(t, int64(2), res.Failed[0].PostID)
	assert.EqualError(t, res.Failed[1].Err, "record 2: malformed")
	assert.ErrorIs(t, res.Failed[2].Err, ErrDuplicateFilename)

	assert.Equal(t, 3, logs.FilterMessage("export failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("exported").Len())
}

func TestRunCancelled(t *testing.T) {
	e, _ := newExporter(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Run(ctx, []loader.Record{rec(0, 1, "1-first", "one")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunWriteFailure(t *testing.T) {
	e, _ := newExporter(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(e.OutDir, "1-first.md"), 0o755))
	res, err := e.Run(context.Background(), []loader.Record{rec(0, 1, "1-first", "one")})
	require.NoError(t, err)
	require.Len(t, res.Failed, 1)
	assert.ErrorIs(t, res.Failed[0].Err, render.ErrWriteFailure)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"7807200-div-style-display", "7807200-div-style-display.md"},
		{"a/b\\c:d", "a-b-c-d.md"},
		{" ..hidden.. ", "hidden.md"},
		{"", "42.md"},
		{"tab\there", "tabhere.md"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FileName(tc.slug, 42), tc.slug)
	}
}

func TestHashStable(t *testing.T) {
	assert.Equal(t, Hash("abc"), Hash("abc"))
	assert.NotEqual(t, Hash("abc"), Hash("abd"))
	assert.Len(t, Hash(""), 64)
}
