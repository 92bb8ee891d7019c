// Package doctree models the host's syntax tree of a whole document: the
// line level nodes a host reports for fenced code blocks. Host specific
// token names are translated to Kind in exactly one place, KindOf.
package doctree

import (
	"sort"
	"strings"
)

// Kind is the role of a host node.
type Kind int

const (
	Other Kind = iota
	Document
	FenceBegin
	FenceEnd
	CodeLine
)

func (k Kind) String() string {
	switch k {
	case Document:
		return "Document"
	case FenceBegin:
		return "FenceBegin"
	case FenceEnd:
		return "FenceEnd"
	case CodeLine:
		return "CodeLine"
	}
	return "Other"
}

// Host token names for fenced code lines.
const (
	HostFenceBegin = "HyperMD-codeblock-begin"
	HostFenceEnd   = "HyperMD-codeblock-end"
	HostCodeLine   = "HyperMD-codeblock"
)

// KindOf translates a host token name to a Kind. A host may report a
// space or underscore separated list of names for one line; the most
// specific code block name wins.
func KindOf(hostName string) Kind {
	names := strings.FieldsFunc(hostName, func(r rune) bool {
		return r == ' ' || r == '_'
	})
	kind := Other
	for _, n := range names {
		switch n {
		case HostFenceBegin:
			return FenceBegin
		case HostFenceEnd:
			return FenceEnd
		case HostCodeLine:
			kind = CodeLine
		}
	}
	return kind
}

// Node is a host tree node. [From, To) is its byte range in the document.
type Node struct {
	Kind     Kind
	From     int
	To       int
	Children []*Node
}

// Token is one line level token as a host reports it.
type Token struct {
	Name string
	From int
	To   int
}

// Build makes a tree from a flat token stream: a Document node whose
// children are the tokens in document order. Tokens with inverted ranges
// are dropped.
func Build(tokens []Token) *Node {
	root := &Node{Kind: Document}
	ts := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.From < 0 || t.To < t.From {
			continue
		}
		ts = append(ts, t)
	}
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].From < ts[j].From })
	for _, t := range ts {
		root.Children = append(root.Children, &Node{Kind: KindOf(t.Name), From: t.From, To: t.To})
		if t.To > root.To {
			root.To = t.To
		}
	}
	return root
}

// Doc pairs a document's text with the host tree over it.
type Doc struct {
	Source string
	Root   *Node
}

// Text returns the document text under n, clipped to the document.
func (d Doc) Text(n *Node) string {
	from, to := n.From, n.To
	if to > len(d.Source) {
		to = len(d.Source)
	}
	if from > to {
		return ""
	}
	return d.Source[from:to]
}
