package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rjkroege/statblock/live"
	"github.com/rjkroege/statblock/region"
	"github.com/rjkroege/statblock/rich"
)

func writeRegions(w io.Writer, rs []region.Region) error {
	for _, r := range rs {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d\t%q\n", r.Start, r.Variant, len(r.Text), firstLine(r.Text)); err != nil {
			return err
		}
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func writeDecorations(w io.Writer, ds []rich.Decoration) error {
	for _, d := range ds {
		var err error
		if d.Kind == rich.Widget {
			_, err = fmt.Fprintf(w, "%d\twidget\t%s\t%q\n", d.From, d.Class, d.Text)
		} else {
			_, err = fmt.Fprintf(w, "%d-%d\tmark\t%s\n", d.From, d.To, d.Class)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type decorationJSON struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Kind     string `json:"kind"`
	Class    string `json:"class"`
	Priority int    `json:"priority"`
	Text     string `json:"text,omitempty"`
}

func writeDecorationsJSON(w io.Writer, ds []rich.Decoration) error {
	out := make([]decorationJSON, 0, len(ds))
	for _, d := range ds {
		out = append(out, decorationJSON{
			From:     d.From,
			To:       d.To,
			Kind:     d.Kind.String(),
			Class:    d.Class,
			Priority: d.Priority,
			Text:     d.Text,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeState is the report of the watch and acme commands.
func writeState(w io.Writer, s live.State) error {
	if _, err := fmt.Fprintf(w, "%d regions, %d decorations, locale %q\n", len(s.Regions), len(s.Decorations), s.Locale); err != nil {
		return err
	}
	if err := writeRegions(w, s.Regions); err != nil {
		return err
	}
	return writeDecorations(w, s.Decorations)
}
