package theme

import (
	"sort"
	"strings"

	"github.com/rjkroege/statblock/rich"
)

// Segment is a run of text under one set of decorations. A widget is a
// Segment of its own with Widget set.
type Segment struct {
	Text   string
	Class  string
	Widget bool
}

// Segments cuts text, which starts at document offset base, at every
// decoration boundary. Each segment's Class joins the classes of the
// marks covering it in decoration order. Widgets are placed before the
// text at their offset.
func Segments(text string, base int, ds []rich.Decoration) []Segment {
	cuts := map[int]bool{0: true, len(text): true}
	for _, d := range ds {
		for _, at := range []int{d.From - base, d.To - base} {
			if at > 0 && at < len(text) {
				cuts[at] = true
			}
		}
	}
	bounds := make([]int, 0, len(cuts))
	for at := range cuts {
		bounds = append(bounds, at)
	}
	sort.Ints(bounds)

	var out []Segment
	widgets := func(at int) {
		for _, d := range ds {
			if d.Kind == rich.Widget && d.From-base == at {
				out = append(out, Segment{Text: d.Text, Class: d.Class, Widget: true})
			}
		}
	}
	for i := 0; i+1 < len(bounds); i++ {
		from, to := bounds[i], bounds[i+1]
		widgets(from)
		var classes []string
		for _, d := range ds {
			if d.Kind == rich.Mark && d.From-base <= from && d.To-base >= to {
				classes = append(classes, d.Class)
			}
		}
		out = append(out, Segment{Text: text[from:to], Class: strings.Join(classes, " ")})
	}
	if len(text) > 0 {
		widgets(len(text))
	}
	return out
}

// Painter writes decorated text for a terminal.
type Painter struct {
	Palette Palette
	// Plain drops all styling, for output that is not a terminal.
	Plain bool
}

// Paint returns text with the decorations applied. Widgets are shown as
// their text in angle brackets.
func (p Painter) Paint(text string, base int, ds []rich.Decoration) string {
	var b strings.Builder
	for _, s := range Segments(text, base, ds) {
		t := s.Text
		if s.Widget {
			t = "⟨" + t + "⟩"
		}
		if p.Plain || s.Class == "" {
			b.WriteString(t)
			continue
		}
		style := p.Palette.Style(s.Class)
		// Render pads multi-line input to a block, so style line by line.
		for i, line := range strings.Split(t, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}
