// Package markdown parses stat block text with goldmark extended by
// ==highlight== spans and `[action]` markers. Parse reduces the goldmark
// tree to a Node tree carrying byte spans of the constructs the
// presentations style.
package markdown

import (
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// md is shared; goldmark parsers and renderers keep no per-call state.
var md = goldmark.New(
	goldmark.WithExtensions(Highlighting, InlineActions),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

// Markdown returns the extended goldmark instance.
func Markdown() goldmark.Markdown {
	return md
}

// RenderHTML writes the HTML of src to w.
func RenderHTML(src []byte, w io.Writer) error {
	return md.Convert(src, w)
}

// Parse parses s and returns its Document node. The same input always
// yields the same tree.
func Parse(s string) *Node {
	src := []byte(s)
	doc := md.Parser().Parse(text.NewReader(src))
	root := &Node{Kind: Document, From: 0, To: len(src)}
	b := builder{src: src}
	root.Children = b.children(doc)
	return root
}

type builder struct {
	src []byte
}

func (b *builder) children(n ast.Node) []*Node {
	var out []*Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if m := b.node(c); m != nil {
			out = append(out, m)
		}
	}
	return out
}

// node converts n. Plain text leaves, and constructs whose extent cannot
// be recovered from the source, are dropped.
func (b *builder) node(n ast.Node) *Node {
	switch n.Kind() {
	case ast.KindText, ast.KindString:
		return nil
	}
	kids := b.children(n)
	m := &Node{Kind: kindOf(n), Children: kids}

	var ok bool
	switch v := n.(type) {
	case *ast.Heading:
		m.From, m.To, ok = b.headingSpan(v)
	case *ast.Paragraph, *ast.TextBlock:
		m.From, m.To, ok = b.linesSpan(n)
	case *ast.ListItem:
		m.From, m.To, ok = unionOf(kids)
		m.From = markerStart(b.src, m.From)
	case *ast.Emphasis:
		m.From, m.To, ok = b.textSpan(n)
		m.From, m.To = m.From-v.Level, m.To+v.Level
	case *HighlightNode:
		m.From, m.To, ok = b.textSpan(n)
		m.From, m.To = m.From-2, m.To+2
	case *InlineActionNode:
		m.From, m.To, ok = v.Segment.Start, v.Segment.Stop, true
		m.Tag = v.Tag
	case *ast.CodeSpan:
		m.From, m.To, ok = b.textSpan(n)
		m.From, m.To = b.widenBackticks(m.From, m.To)
	case *ast.RawHTML:
		if v.Segments.Len() > 0 {
			m.From, m.To, ok = v.Segments.At(0).Start, v.Segments.At(v.Segments.Len()-1).Stop, true
		}
	default:
		if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
			m.From, m.To, ok = b.linesSpan(n)
		} else {
			m.From, m.To, ok = unionOf(kids)
			if !ok {
				m.From, m.To, ok = b.textSpan(n)
			}
		}
	}
	if !ok || m.From < 0 || m.To > len(b.src) || m.To < m.From {
		return nil
	}
	return m
}

func kindOf(n ast.Node) Kind {
	switch v := n.(type) {
	case *ast.Heading:
		switch v.Level {
		case 1:
			return Heading1
		case 2:
			return Heading2
		case 3:
			return Heading3
		case 4:
			return Heading4
		}
	case *ast.Paragraph, *ast.TextBlock:
		return Paragraph
	case *ast.Emphasis:
		if v.Level >= 2 {
			return StrongEmphasis
		}
		return Emphasis
	case *HighlightNode:
		return Highlight
	case *InlineActionNode:
		return InlineAction
	case *ast.ListItem:
		return ListItem
	case *ast.List:
		if v.IsOrdered() {
			return OrderedList
		}
		return BulletList
	}
	return Other
}

// headingSpan runs from the first '#' (or the first character of a setext
// heading) to the end of the last content line, trailing blanks excluded.
func (b *builder) headingSpan(h *ast.Heading) (int, int, bool) {
	lines := h.Lines()
	if lines.Len() == 0 {
		return 0, 0, false
	}
	from := lineStart(b.src, lines.At(0).Start)
	for from < len(b.src) && (b.src[from] == ' ' || b.src[from] == '\t') {
		from++
	}
	to := lines.At(lines.Len() - 1).Stop
	for to < len(b.src) && b.src[to] != '\n' && b.src[to] != '\r' {
		to++
	}
	return from, trimRight(b.src, from, to), true
}

func (b *builder) linesSpan(n ast.Node) (int, int, bool) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return 0, 0, false
	}
	from := lines.At(0).Start
	return from, trimRight(b.src, from, lines.At(lines.Len()-1).Stop), true
}

// textSpan is the union of every text segment below n.
func (b *builder) textSpan(n ast.Node) (int, int, bool) {
	from, to, ok := 0, 0, false
	add := func(s, t int) {
		if !ok || s < from {
			from = s
		}
		if !ok || t > to {
			to = t
		}
		ok = true
	}
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			add(v.Segment.Start, v.Segment.Stop)
		case *InlineActionNode:
			add(v.Segment.Start, v.Segment.Stop)
			return ast.WalkSkipChildren, nil
		case *HighlightNode, *ast.Emphasis:
			if c != n {
				if s, t, k := b.textSpan(c); k {
					w := 2
					if e, isEm := c.(*ast.Emphasis); isEm {
						w = e.Level
					}
					add(s-w, t+w)
				}
				return ast.WalkSkipChildren, nil
			}
		case *ast.CodeSpan:
			if c != n {
				if s, t, k := b.textSpan(c); k {
					add(b.widenBackticks(s, t))
				}
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})
	return from, to, ok
}

// widenBackticks extends a code span's content over its delimiters.
func (b *builder) widenBackticks(from, to int) (int, int) {
	if from > 0 && b.src[from-1] == ' ' && from > 1 && b.src[from-2] == '`' {
		from--
	}
	for from > 0 && b.src[from-1] == '`' {
		from--
	}
	if to < len(b.src) && b.src[to] == ' ' && to+1 < len(b.src) && b.src[to+1] == '`' {
		to++
	}
	for to < len(b.src) && b.src[to] == '`' {
		to++
	}
	return from, to
}

func unionOf(nodes []*Node) (int, int, bool) {
	if len(nodes) == 0 {
		return 0, 0, false
	}
	from, to := nodes[0].From, nodes[0].To
	for _, n := range nodes[1:] {
		if n.From < from {
			from = n.From
		}
		if n.To > to {
			to = n.To
		}
	}
	return from, to, true
}

func lineStart(src []byte, i int) int {
	for i > 0 && src[i-1] != '\n' {
		i--
	}
	return i
}

func trimRight(src []byte, from, to int) int {
	for to > from && isBlank(src[to-1]) {
		to--
	}
	return to
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// markerStart moves back from the start of a list item's content over the
// blanks and the list marker ("-", "+", "*", "1." or "1)") on the same
// line.
func markerStart(src []byte, i int) int {
	j := i
	for j > 0 && (src[j-1] == ' ' || src[j-1] == '\t') {
		j--
	}
	if j == 0 {
		return i
	}
	switch src[j-1] {
	case '-', '+', '*':
		return j - 1
	case '.', ')':
		k := j - 1
		for k > 0 && src[k-1] >= '0' && src[k-1] <= '9' {
			k--
		}
		if k < j-1 {
			return k
		}
	}
	return i
}
