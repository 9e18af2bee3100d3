package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/chostmd/internal/loader"
	"github.com/mithrel/chostmd/internal/present"
	"github.com/mithrel/chostmd/internal/ui"
)

func newListCmd() *cobra.Command {
	var input string
	var filters FilterOpts
	var outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "list -i FILE",
		Short: "List the posts of a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loader.ReadFile(input, loader.FormatAuto)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}
			recs, err = selectRecords(recs, filters)
			if err != nil {
				return err
			}

			if strings.ToLower(outputMode) == "progress" {
				progress := ui.NewProgress(cmd.OutOrStdout())
				for _, r := range recs {
					st := ui.StatusNone
					if r.Err != nil {
						st = ui.StatusFailed
					}
					progress.Item(r.Index, r.Post.Filename, r.Post.Author(), st)
				}
				return nil
			}

			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeMarkdown || mode == present.ModePretty {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			rows := summarize(recs)
			opts := present.Options{Mode: mode, Headers: !noHeaders}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderSummaries(w, rows, opts)
			})
		},
	}
	addFilterFlags(cmd, &filters)
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (JSON array or one post per line)")
	cmd.Flags().StringVar(&outputMode, "output", "progress", "output mode: progress|plain|json|ndjson")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit the header row in plain output")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// summarize skips records that failed to decode.
func summarize(recs []loader.Record) []present.Summary {
	rows := make([]present.Summary, 0, len(recs))
	for _, r := range recs {
		if r.Err != nil {
			continue
		}
		published, _ := time.Parse(time.RFC3339, r.Post.PublishedAt)
		rows = append(rows, present.Summary{
			Index:       r.Index,
			PostID:      r.Post.PostID,
			Filename:    r.Post.Filename,
			Handle:      r.Post.Author(),
			PublishedAt: published,
			Tags:        r.Post.Tags,
			Shares:      len(r.Post.ShareTree),
		})
	}
	return rows
}
