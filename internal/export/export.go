package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mithrel/chostmd/internal/db"
	"github.com/mithrel/chostmd/internal/loader"
	"github.com/mithrel/chostmd/internal/logging"
	"github.com/mithrel/chostmd/internal/render"
	"github.com/mithrel/chostmd/pkg/cohost"
)

// ErrDuplicateFilename marks a post whose file name is already taken by an
// earlier post of the same batch.
var ErrDuplicateFilename = errors.New("duplicate filename")

// Outcome is what happened to one post.
type Outcome int

const (
	Written Outcome = iota + 1
	Unchanged
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Written:
		return "written"
	case Unchanged:
		return "unchanged"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Item reports one input record.
type Item struct {
	Index   int
	PostID  int64
	Slug    string
	Handle  string
	Path    string
	Outcome Outcome
	Err     error
}

// Result of a batch. Items follow input order.
type Result struct {
	Items     []Item
	Written   int
	Unchanged int
	Failed    []Item
}

// Exporter renders posts into OutDir, one Markdown file per post.
type Exporter struct {
	OutDir    string
	Workers   int
	Overwrite bool
	Renderer  *render.Renderer
	// Store is optional; without it every post is written.
	Store db.Store
	Log   *zap.Logger
	// Now stamps manifest records; time.Now when nil.
	Now func() time.Time
}

// Run exports recs. Per-post failures land in the Result; the returned error
// is reserved for an unusable output directory or a cancelled context.
func (e *Exporter) Run(ctx context.Context, recs []loader.Record) (Result, error) {
	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("output directory: %w", err)
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	rdr := e.Renderer
	if rdr == nil {
		rdr = render.NewRenderer(time.Local)
	}
	workers := e.Workers
	if workers <= 0 {
		workers = 1
	}

	items := make([]Item, len(recs))
	taken := make(map[string]int64, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range recs {
		items[i] = Item{Index: rec.Index, PostID: rec.Post.PostID, Slug: rec.Post.Filename, Handle: rec.Post.Author()}
		if rec.Err != nil {
			items[i].Outcome, items[i].Err = Failed, rec.Err
			continue
		}
		name := FileName(rec.Post.Filename, rec.Post.PostID)
		if first, ok := taken[name]; ok {
			items[i].Outcome = Failed
			items[i].Err = fmt.Errorf("%w: %s already used by post %d", ErrDuplicateFilename, name, first)
			continue
		}
		taken[name] = rec.Post.PostID
		items[i].Path = filepath.Join(e.OutDir, name)

		it := &items[i]
		post := rec.Post
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			it.Outcome, it.Err = e.exportOne(gctx, rdr, post, it.Path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Items: items}
	for _, it := range items {
		switch it.Outcome {
		case Written:
			res.Written++
			log.Debug("exported", logging.Post(it.PostID, it.Slug), zap.String("path", it.Path))
		case Unchanged:
			res.Unchanged++
			log.Debug("unchanged", logging.Post(it.PostID, it.Slug))
		default:
			res.Failed = append(res.Failed, it)
			log.Warn("export failed", zap.Int("index", it.Index), logging.Post(it.PostID, it.Slug), logging.Error(it.Err))
		}
	}
	return res, nil
}

func (e *Exporter) exportOne(ctx context.Context, rdr *render.Renderer, p cohost.Post, path string) (Outcome, error) {
	doc, err := rdr.Render(p)
	if err != nil {
		return Failed, err
	}
	sum := Hash(doc)

	if e.Store != nil && !e.Overwrite {
		prev, err := e.Store.Get(ctx, p.PostID)
		switch {
		case err == nil && prev.Hash == sum && fileExists(path):
			return Unchanged, nil
		case err != nil && !errors.Is(err, db.ErrNotFound):
			return Failed, fmt.Errorf("manifest: %w", err)
		}
	}

	if err := writeAtomic(path, doc); err != nil {
		return Failed, &render.Error{PostID: p.PostID, Err: fmt.Errorf("%w: %v", render.ErrWriteFailure, err)}
	}

	if e.Store != nil {
		now := time.Now
		if e.Now != nil {
			now = e.Now
		}
		rec := db.Record{PostID: p.PostID, Filename: filepath.Base(path), Hash: sum, ExportedAt: now()}
		if err := e.Store.Put(ctx, rec); err != nil {
			return Failed, fmt.Errorf("manifest: %w", err)
		}
	}
	return Written, nil
}

func writeAtomic(path, doc string) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.WriteString(doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
