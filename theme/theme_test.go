package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rjkroege/statblock/rich"
)

func TestSetDarkMode(t *testing.T) {
	defer SetDarkMode(false)
	SetDarkMode(true)
	if !IsDarkMode() || Current() != darkPalette {
		t.Error("dark mode not selected")
	}
	SetDarkMode(false)
	if IsDarkMode() || Current() != lightPalette {
		t.Error("light mode not selected")
	}
}

func TestStyle(t *testing.T) {
	p := lightPalette
	if s := p.Style("pf2e-live pf2e-h1"); !s.GetBold() || s.GetForeground() != p.Heading {
		t.Errorf("h1 style not bold heading colour")
	}
	if s := p.Style("pf2e-live pf2e-mark pf2e-trait-rare"); s.GetBackground() != p.TraitRare {
		t.Errorf("rare trait background = %v", s.GetBackground())
	}
	if s := p.Style("pf2e-live pf2e-mark sf2e-trait-normal"); s.GetBackground() != p.TraitAltNormal {
		t.Errorf("alternate normal background = %v", s.GetBackground())
	}
	if s := p.Style("pf2e-live pf2e-i"); !s.GetItalic() || s.GetBold() {
		t.Errorf("italic style wrong")
	}
}

func TestSegments(t *testing.T) {
	ds := []rich.Decoration{
		{From: 10, To: 22, Class: "p", Priority: -1},
		{From: 10, To: 18, Class: "mark", Priority: 1},
		{From: 22, To: 22, Class: "w", Kind: rich.Widget, Text: "reaction"},
	}
	got := Segments("==rare== x\n  ", 10, ds)
	want := []Segment{
		{Text: "==rare==", Class: "p mark"},
		{Text: " x\n ", Class: "p"},
		{Text: "reaction", Class: "w", Widget: true},
		{Text: " "},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Segments mismatch (-want +got):\n%s", diff)
	}
}

func TestPaintPlain(t *testing.T) {
	ds := []rich.Decoration{
		{From: 0, To: 12, Class: "pf2e-live pf2e-p", Priority: -1},
		{From: 0, To: 12, Class: "pf2e-live pf2e-actionSource", Priority: 2},
		{From: 12, To: 12, Class: "pf2e-action pf2e-reaction", Priority: 2, Kind: rich.Widget, Text: "reaction"},
	}
	got := Painter{Palette: lightPalette, Plain: true}.Paint("`[reaction]`", 0, ds)
	if want := "`[reaction]`⟨reaction⟩"; got != want {
		t.Errorf("Paint = %q, want %q", got, want)
	}
}
