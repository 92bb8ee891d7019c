package markdown

import (
	"fmt"
	"strings"
)

// Kind identifies the markup constructs the stat block presentations
// care about. Everything else the grammar recognizes is Other.
type Kind int

const (
	Other Kind = iota
	Document
	Heading1
	Heading2
	Heading3
	Heading4
	Paragraph
	Emphasis
	StrongEmphasis
	InlineAction
	Highlight
	ListItem
	BulletList
	OrderedList
)

var kindNames = [...]string{
	Other:          "Other",
	Document:       "Document",
	Heading1:       "Heading1",
	Heading2:       "Heading2",
	Heading3:       "Heading3",
	Heading4:       "Heading4",
	Paragraph:      "Paragraph",
	Emphasis:       "Emphasis",
	StrongEmphasis: "StrongEmphasis",
	InlineAction:   "InlineAction",
	Highlight:      "Highlight",
	ListItem:       "ListItem",
	BulletList:     "BulletList",
	OrderedList:    "OrderedList",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Node is one parsed construct. From and To are byte offsets into the
// parsed text; [From, To) covers the construct including its markers.
// Nodes are immutable once Parse returns.
type Node struct {
	Kind     Kind
	From     int
	To       int
	Tag      string // action name of an InlineAction, without brackets
	Children []*Node
}

// Walk visits n and its descendants depth first in document order. If f
// returns false the children of that node are skipped.
func (n *Node) Walk(f func(*Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(f)
	}
}

// String renders the tree in a compact nested form, handy in test
// failures.
func (n *Node) String() string {
	var b strings.Builder
	n.format(&b, 0)
	return b.String()
}

func (n *Node) format(b *strings.Builder, depth int) {
	fmt.Fprintf(b, "%s%v[%d,%d)", strings.Repeat("  ", depth), n.Kind, n.From, n.To)
	if n.Tag != "" {
		fmt.Fprintf(b, " %q", n.Tag)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.format(b, depth+1)
	}
}
