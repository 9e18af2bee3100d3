package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/chostmd/internal/loader"
	"github.com/mithrel/chostmd/internal/ui"
)

// ErrCheckFailed is returned when a checked file holds malformed or
// unrenderable posts.
var ErrCheckFailed = errors.New("check failed")

func newCheckCmd() *cobra.Command {
	var input string
	var render bool
	cmd := &cobra.Command{
		Use:   "check -i FILE",
		Short: "Decode every post of a file and report the ones that fail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			progress := ui.NewProgress(cmd.OutOrStdout())
			ok, failed := 0, 0
			err := loader.LoadFile(input, loader.FormatAuto, func(r loader.Record) error {
				err := r.Err
				if err == nil && render {
					_, err = app.Renderer.Render(r.Post)
				}
				if err != nil {
					failed++
					progress.Item(r.Index, r.Post.Filename, r.Post.Author(), ui.StatusFailed)
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", err)
					return nil
				}
				ok++
				progress.Item(r.Index, r.Post.Filename, r.Post.Author(), ui.StatusNone)
				return nil
			})
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d ok, %d failed\n", ok, failed)
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d posts", ErrCheckFailed, failed, ok+failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (JSON array or one post per line)")
	cmd.Flags().BoolVar(&render, "render", false, "also render each post")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
