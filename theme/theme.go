// Package theme colours stat block classes for terminal output.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rjkroege/statblock/rich"
	"github.com/rjkroege/statblock/traits"
)

// Palette holds the terminal colours of the stat block classes.
type Palette struct {
	Heading     lipgloss.Color
	Subheading  lipgloss.Color
	Text        lipgloss.Color
	Bullet      lipgloss.Color
	Action      lipgloss.Color
	ActionError lipgloss.Color
	Source      lipgloss.Color

	TraitText       lipgloss.Color
	TraitNormal     lipgloss.Color
	TraitAltNormal  lipgloss.Color
	TraitSize       lipgloss.Color
	TraitAlignment  lipgloss.Color
	TraitSettlement lipgloss.Color
	TraitUncommon   lipgloss.Color
	TraitRare       lipgloss.Color
	TraitUnique     lipgloss.Color
}

var (
	darkMode bool
	current  = lightPalette
)

var lightPalette = Palette{
	// Printed stat block colours
	Heading:     "#5d0000",
	Subheading:  "#002564",
	Text:        "#000000",
	Bullet:      "#5d0000",
	Action:      "#000000",
	ActionError: "#c00000",
	Source:      "#808080",

	TraitText:       "#ffffff",
	TraitNormal:     "#5d0000",
	TraitAltNormal:  "#2b3b4e",
	TraitSize:       "#478c42",
	TraitAlignment:  "#576293",
	TraitSettlement: "#1c6b6b",
	TraitUncommon:   "#c45500",
	TraitRare:       "#002664",
	TraitUnique:     "#54166e",
}

var darkPalette = Palette{
	Heading:     "#e08a6c",
	Subheading:  "#8fb4ff",
	Text:        "#eeeeee",
	Bullet:      "#e08a6c",
	Action:      "#eeeeee",
	ActionError: "#ff5f5f",
	Source:      "#888888",

	TraitText:       "#ffffff",
	TraitNormal:     "#8a2020",
	TraitAltNormal:  "#4b6580",
	TraitSize:       "#5aa854",
	TraitAlignment:  "#7a86c0",
	TraitSettlement: "#2e9a9a",
	TraitUncommon:   "#e0781e",
	TraitRare:       "#2b5fb8",
	TraitUnique:     "#8a3fb0",
}

// SetDarkMode selects between the light and dark palettes.
func SetDarkMode(enabled bool) {
	darkMode = enabled
	if enabled {
		current = darkPalette
	} else {
		current = lightPalette
	}
}

// IsDarkMode reports the current mode.
func IsDarkMode() bool { return darkMode }

// Current returns the active colour palette.
func Current() Palette { return current }

// Style returns the terminal style for a class list. Later classes
// refine earlier ones.
func (p Palette) Style(classes string) lipgloss.Style {
	s := lipgloss.NewStyle()
	for _, c := range strings.Fields(classes) {
		switch c {
		case rich.ClassH1:
			s = s.Bold(true).Underline(true).Foreground(p.Heading)
		case rich.ClassH2, rich.ClassH3:
			s = s.Bold(true).Foreground(p.Subheading)
		case rich.ClassH4:
			s = s.Faint(true)
		case rich.ClassBold:
			s = s.Bold(true)
		case rich.ClassItalic:
			s = s.Italic(true)
		case rich.ClassParagraph:
			s = s.Foreground(p.Text)
		case rich.ClassListItem:
			s = s.Foreground(p.Bullet)
		case rich.ClassActionSource:
			s = s.Foreground(p.Source)
		case rich.ClassAction:
			s = s.Bold(true).Foreground(p.Action)
		case rich.ClassActionError:
			s = s.Foreground(p.ActionError)
		case rich.ClassMark:
			s = s.Bold(true).Foreground(p.TraitText).Background(p.TraitNormal)
		default:
			if bg, ok := p.trait(c); ok {
				s = s.Background(bg)
			}
		}
	}
	return s
}

func (p Palette) trait(class string) (lipgloss.Color, bool) {
	colors := map[string]lipgloss.Color{
		traits.Normal.Class(traits.AltRuleset):   p.TraitAltNormal,
		traits.Normal.Class(traits.Standard):     p.TraitNormal,
		traits.Size.Class(traits.Standard):       p.TraitSize,
		traits.Alignment.Class(traits.Standard):  p.TraitAlignment,
		traits.Settlement.Class(traits.Standard): p.TraitSettlement,
		traits.Uncommon.Class(traits.Standard):   p.TraitUncommon,
		traits.Rare.Class(traits.Standard):       p.TraitRare,
		traits.Unique.Class(traits.Standard):     p.TraitUnique,
	}
	c, ok := colors[class]
	return c, ok
}
