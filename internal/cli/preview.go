package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/chostmd/internal/loader"
	"github.com/mithrel/chostmd/internal/present"
	"github.com/mithrel/chostmd/internal/util"
)

func newPreviewCmd() *cobra.Command {
	var input string
	var post string
	var index int
	var outputMode string
	var style string
	var wrap int
	cmd := &cobra.Command{
		Use:   "preview -i FILE [--post ID|--index N]",
		Short: "Render one post to stdout without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			applyConfigFlagOverrides(cmd, app.Cfg,
				flagOverride{Flag: "style", Key: "preview.style"},
				flagOverride{Flag: "wrap", Key: "preview.word_wrap"},
			)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModePlain {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}

			recs, err := loader.ReadFile(input, loader.FormatAuto)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}
			rec, err := pickRecord(recs, post, index)
			if err != nil {
				return err
			}
			if rec.Err != nil {
				return rec.Err
			}

			if mode == present.ModeMarkdown {
				return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
					return app.Renderer.RenderTo(w, rec.Post)
				})
			}

			md, err := app.Renderer.Render(rec.Post)
			if err != nil {
				return err
			}
			width := app.Cfg.GetInt("preview.word_wrap")
			if width == 0 {
				width = terminalWidth(cmd.OutOrStdout(), defaultWordWrap)
			}
			doc := present.Document{
				PostID:   rec.Post.PostID,
				Filename: rec.Post.Filename,
				Handle:   rec.Post.Author(),
				Markdown: md,
			}
			opts := present.Options{
				Mode:       mode,
				JSONIndent: true,
				Style:      app.Cfg.GetString("preview.style"),
				WordWrap:   width,
			}
			return renderDocument(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), doc, opts)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (JSON array or one post per line)")
	cmd.Flags().StringVar(&post, "post", "", "post id or filename to preview")
	cmd.Flags().IntVar(&index, "index", 1, "1-based position of the post in the file")
	cmd.Flags().StringVar(&outputMode, "output", "markdown", "output mode: markdown|pretty|json")
	cmd.Flags().StringVar(&style, "style", "", "glamour style for pretty output (overrides preview.style)")
	cmd.Flags().IntVar(&wrap, "wrap", 0, "word wrap for pretty output (overrides preview.word_wrap)")
	cmd.MarkFlagsMutuallyExclusive("post", "index")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// pickRecord finds a post by id or filename, falling back to the 1-based index.
func pickRecord(recs []loader.Record, post string, index int) (loader.Record, error) {
	if post == "" {
		if index < 1 || index > len(recs) {
			return loader.Record{}, fmt.Errorf("--index %d out of range (file has %d posts)", index, len(recs))
		}
		return recs[index-1], nil
	}

	id, idErr := strconv.ParseInt(post, 10, 64)
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		if r.Err != nil {
			continue
		}
		if (idErr == nil && r.Post.PostID == id) || r.Post.Filename == post {
			return r, nil
		}
		names = append(names, r.Post.Filename)
	}
	if hints := util.BestMatches(post, names, 3); len(hints) > 0 {
		return loader.Record{}, fmt.Errorf("no post %q; did you mean %s?", post, strings.Join(hints, ", "))
	}
	return loader.Record{}, fmt.Errorf("no post %q", post)
}
