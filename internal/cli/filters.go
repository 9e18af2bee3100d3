package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/chostmd/internal/loader"
	"github.com/mithrel/chostmd/internal/util"
)

// FilterOpts narrows the records of an input file.
type FilterOpts struct {
	Since string
	Until string
	Match string
}

func addFilterFlags(cmd *cobra.Command, f *FilterOpts) {
	cmd.Flags().StringVar(&f.Since, "since", "", "only posts published after this time (e.g. 2w, 2024-01-31)")
	cmd.Flags().StringVar(&f.Until, "until", "", "only posts published before this time")
	cmd.Flags().StringVar(&f.Match, "match", "", "only posts whose filename fuzzy-matches this query")
}

// selectRecords applies the filters. Records that failed to decode are kept
// so they are still reported.
func selectRecords(recs []loader.Record, f FilterOpts) ([]loader.Record, error) {
	rng, err := util.NormalizeTimeRange(f.Since, f.Until)
	if err != nil {
		return nil, err
	}
	if rng.IsOpen() && f.Match == "" {
		return recs, nil
	}

	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.Post.Filename
	}
	matched := make(map[int]bool, len(recs))
	for _, i := range util.MatchIndices(f.Match, names) {
		matched[i] = true
	}

	out := make([]loader.Record, 0, len(recs))
	for i, r := range recs {
		if r.Err != nil {
			out = append(out, r)
			continue
		}
		if !matched[i] {
			continue
		}
		if !rng.IsOpen() {
			published, err := time.Parse(time.RFC3339, r.Post.PublishedAt)
			// unparseable times are left for the renderer to report
			if err == nil && !rng.Contains(published) {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}
