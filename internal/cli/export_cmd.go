package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mithrel/chostmd/internal/export"
	"github.com/mithrel/chostmd/internal/loader"
	"github.com/mithrel/chostmd/internal/ui"
)

// ErrPartialExport is returned when some posts of a batch failed.
var ErrPartialExport = errors.New("some posts failed to export")

func newPostsCmd() *cobra.Command {
	return newExportCmd("posts", "Export your own posts (posts.json, a JSON array)", loader.FormatArray)
}

func newLikesCmd() *cobra.Command {
	return newExportCmd("likes", "Export liked posts (liked.json, one post per line)", loader.FormatNDJSON)
}

func newExportCmd(use, short string, format loader.Format) *cobra.Command {
	var input string
	var workers int
	var overwrite bool
	var filters FilterOpts
	cmd := &cobra.Command{
		Use:   use + " -i FILE [OUTDIR]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			applyConfigFlagOverrides(cmd, app.Cfg,
				flagOverride{Flag: "workers", Key: "export.workers"},
				flagOverride{Flag: "overwrite", Key: "export.overwrite"},
			)

			outDir := app.Cfg.GetString("out_dir")
			if len(args) == 1 {
				outDir = args[0]
			}
			if strings.TrimSpace(outDir) == "" {
				return fmt.Errorf("no output directory: pass OUTDIR or set out_dir")
			}

			recs, err := loader.ReadFile(input, format)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}
			total := len(recs)
			recs, err = selectRecords(recs, filters)
			if err != nil {
				return err
			}
			app.Log.Debug("loaded input",
				zap.String("file", input), zap.Stringer("format", format),
				zap.Int("records", total), zap.Int("selected", len(recs)))

			store, err := app.OpenManifest(cmd.Context(), outDir)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			ex := &export.Exporter{
				OutDir:    outDir,
				Workers:   app.Cfg.GetInt("export.workers"),
				Overwrite: app.Cfg.GetBool("export.overwrite"),
				Renderer:  app.Renderer,
				Store:     store,
				Log:       app.Log,
			}
			res, err := ex.Run(cmd.Context(), recs)
			if err != nil {
				return err
			}

			progress := ui.NewProgress(cmd.OutOrStdout())
			for _, it := range res.Items {
				progress.Item(it.Index, it.Slug, it.Handle, statusOf(it.Outcome))
			}
			progress.Summary(res.Written, res.Unchanged, len(res.Failed))
			if len(res.Failed) > 0 {
				return fmt.Errorf("%w: %d of %d", ErrPartialExport, len(res.Failed), len(res.Items))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file exported by cohost-dl")
	cmd.Flags().IntVar(&workers, "workers", 0, "posts rendered in parallel (overrides export.workers)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "rewrite files the manifest reports as unchanged")
	addFilterFlags(cmd, &filters)
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagFilename("input", "json")
	return cmd
}

func statusOf(o export.Outcome) ui.Status {
	switch o {
	case export.Written:
		return ui.StatusWritten
	case export.Unchanged:
		return ui.StatusUnchanged
	case export.Failed:
		return ui.StatusFailed
	default:
		return ui.StatusNone
	}
}
