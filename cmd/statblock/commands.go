package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rjkroege/statblock/decorate"
	"github.com/rjkroege/statblock/region"
	"github.com/rjkroege/statblock/render"
	"github.com/rjkroege/statblock/theme"
)

func newRegionsCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "regions FILE",
		Short: "List the stat block regions of a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDoc(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeRegions(cmd.OutOrStdout(), region.FromDoc(doc, region.WithLogger(s.log)))
		},
	}
}

func newDecorateCmd(s *settings) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "decorate FILE",
		Short: "Print the editing decorations of every stat block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDoc(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := decorate.New(decorate.WithLogger(s.log))
			ds := p.Regions(region.FromDoc(doc, region.WithLogger(s.log)), s.cfg.Locale())
			if asJSON {
				return writeDecorationsJSON(cmd.OutOrStdout(), ds)
			}
			return writeDecorations(cmd.OutOrStdout(), ds)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newShowCmd(s *settings) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print every stat block styled for the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDoc(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			painter := theme.Painter{Palette: theme.Current(), Plain: plain || !isTerminal(out)}
			p := decorate.New(decorate.WithLogger(s.log))
			for i, r := range region.FromDoc(doc, region.WithLogger(s.log)) {
				if i > 0 {
					fmt.Fprintln(out)
				}
				ds := p.Region(&r, s.cfg.Locale())
				if _, err := fmt.Fprintln(out, painter.Paint(r.Text, r.Start, ds)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "never style the output")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newRenderCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE",
		Short: "Print the reading-mode HTML of every stat block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDoc(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := render.New(render.WithLogger(s.log)).Document(doc, s.cfg.Locale())
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
}
