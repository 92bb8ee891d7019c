// Package traits classifies the tagged trait phrases of a stat block
// (sizes, alignments, settlement tiers and rarities) into the style
// categories used by both the reading and the editing presentations.
package traits

// Variant selects between the two supported rule-system dialects.
type Variant int

const (
	Standard Variant = iota
	AltRuleset
)

func (v Variant) String() string {
	if v == AltRuleset {
		return "sf2e"
	}
	return "pf2e"
}

// Category is the semantic class of a trait.
type Category int

const (
	Normal Category = iota
	Size
	Alignment
	Settlement
	Uncommon
	Rare
	Unique
)

var categoryNames = [...]string{
	Normal:     "normal",
	Size:       "size",
	Alignment:  "alignment",
	Settlement: "settlement",
	Uncommon:   "uncommon",
	Rare:       "rare",
	Unique:     "unique",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return categoryNames[Normal]
	}
	return categoryNames[c]
}

// Class returns the style class for c. Only the normal category differs
// between variants: the alternate ruleset draws its plain traits with its
// own border.
func (c Category) Class(v Variant) string {
	if c == Normal && v == AltRuleset {
		return "sf2e-trait-normal"
	}
	return "pf2e-trait-" + c.String()
}

// canonical maps the English trait keys to their categories.
var canonical = map[string]Category{
	"tiny":       Size,
	"small":      Size,
	"medium":     Size,
	"large":      Size,
	"huge":       Size,
	"gargantuan": Size,

	"lg": Alignment,
	"ng": Alignment,
	"cg": Alignment,
	"ln": Alignment,
	"n":  Alignment,
	"cn": Alignment,
	"le": Alignment,
	"ne": Alignment,
	"ce": Alignment,

	"village":    Settlement,
	"town":       Settlement,
	"city":       Settlement,
	"metropolis": Settlement,

	"uncommon": Uncommon,
	"rare":     Rare,
	"unique":   Unique,
}

// Canonical reports the category of an English trait key.
func Canonical(key string) (Category, bool) {
	c, ok := canonical[key]
	return c, ok
}
