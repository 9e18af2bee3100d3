package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/chostmd/internal/config"
	"github.com/mithrel/chostmd/internal/present"
)

// ErrManifestDisabled is returned when manifest.enabled is false.
var ErrManifestDisabled = errors.New("manifest is disabled")

func newManifestCmd() *cobra.Command {
	var outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "manifest [OUTDIR]",
		Short: "List the posts recorded in an export directory's manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeMarkdown || mode == present.ModePretty {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}

			outDir := app.Cfg.GetString("out_dir")
			if len(args) == 1 {
				outDir = args[0]
			}
			if strings.TrimSpace(outDir) == "" {
				return fmt.Errorf("no output directory: pass OUTDIR or set out_dir")
			}
			dsn := config.ResolveManifestPath(app.Cfg, outDir)
			if dsn == "" {
				return ErrManifestDisabled
			}
			// Opening a missing sqlite file would create an empty one.
			if !strings.HasPrefix(dsn, "mem:") {
				if _, err := os.Stat(strings.TrimPrefix(dsn, "sqlite://")); err != nil {
					return fmt.Errorf("no manifest at %s: %w", dsn, err)
				}
			}

			store, err := app.OpenManifest(cmd.Context(), outDir)
			if err != nil {
				return err
			}
			defer store.Close()
			recs, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list manifest: %w", err)
			}

			rows := make([]present.ManifestEntry, 0, len(recs))
			for _, r := range recs {
				rows = append(rows, present.ManifestEntry{
					PostID:     r.PostID,
					Filename:   r.Filename,
					Hash:       r.Hash,
					ExportedAt: r.ExportedAt,
				})
			}
			opts := present.Options{Mode: mode, JSONIndent: true, Headers: !noHeaders}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderManifest(w, rows, opts)
			})
		},
	}
	cmd.Flags().StringVar(&outputMode, "output", "plain", "output mode: plain|json|ndjson")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit the header row in plain output")
	return cmd
}
