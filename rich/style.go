package rich

import "strings"

// Prefix starts every class this module emits.
const Prefix = "pf2e-"

// Style classes read by external stylesheets.
const (
	ClassLive         = Prefix + "live"
	ClassH1           = Prefix + "h1"
	ClassH2           = Prefix + "h2"
	ClassH3           = Prefix + "h3"
	ClassH4           = Prefix + "h4"
	ClassParagraph    = Prefix + "p"
	ClassItalic       = Prefix + "i"
	ClassBold         = Prefix + "b"
	ClassActionSource = Prefix + "actionSource"
	ClassMark         = Prefix + "mark"
	ClassListItem     = Prefix + "li"
	ClassBulletList   = Prefix + "ul"
	ClassOrderedList  = Prefix + "ol"

	ClassAction      = Prefix + "action"
	ClassActionError = Prefix + "action-error"

	ClassStatblock    = Prefix + "statblock"
	ClassTab          = Prefix + "tab"
	ClassSubentry     = Prefix + "subentry"
	ClassContinuation = Prefix + "2nd-paragraph"
	ClassIndent       = Prefix + "indent-"
)

// Classes joins class names into one class attribute value, skipping
// empty names.
func Classes(names ...string) string {
	var b strings.Builder
	for _, n := range names {
		if n == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n)
	}
	return b.String()
}

// HasClass reports whether the space separated list has name.
func HasClass(list, name string) bool {
	for _, f := range strings.Fields(list) {
		if f == name {
			return true
		}
	}
	return false
}
