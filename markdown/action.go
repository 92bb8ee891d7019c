package markdown

import (
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/rjkroege/statblock/rich"
)

// KindInlineAction is the goldmark node kind of a `[tag]` action marker.
var KindInlineAction = ast.NewNodeKind("InlineAction")

// Unknown is the text shown for an action tag outside Actions.
const Unknown = "???"

// Actions lists the action tags that have a glyph.
var Actions = map[string]bool{
	"reaction":      true,
	"free-action":   true,
	"one-action":    true,
	"two-actions":   true,
	"three-actions": true,
}

// ActionWidget returns the text and class of the widget for tag.
func ActionWidget(tag string) (label, class string) {
	if Actions[tag] {
		return tag, rich.Classes(rich.ClassAction, rich.Prefix+tag)
	}
	return Unknown, rich.Classes(rich.ClassAction, rich.ClassActionError)
}

// InlineActionNode replaces a code span written as `[tag]`. Segment
// covers the span including its backticks.
type InlineActionNode struct {
	ast.BaseInline
	Tag     string
	Segment text.Segment
}

// Kind implements ast.Node.
func (n *InlineActionNode) Kind() ast.NodeKind {
	return KindInlineAction
}

// Dump implements ast.Node.
func (n *InlineActionNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Tag":     n.Tag,
		"Segment": fmt.Sprintf("[%d, %d)", n.Segment.Start, n.Segment.Stop),
	}, nil)
}

const (
	actionTransformerPriority = 500
	actionRendererPriority    = 500
)

type actionTransformer struct{}

// Transform collects qualifying code spans first and replaces them after
// the walk so the tree is not mutated while it is traversed.
func (t *actionTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var found []*ast.CodeSpan
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if cs, ok := n.(*ast.CodeSpan); ok {
			found = append(found, cs)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	for _, cs := range found {
		tag, seg, ok := actionOf(cs, source)
		if !ok {
			continue
		}
		parent := cs.Parent()
		if parent == nil {
			continue
		}
		parent.ReplaceChild(parent, cs, &InlineActionNode{Tag: tag, Segment: seg})
	}
}

// actionOf reports whether cs is written as `[tag]` with exactly one
// backtick on each side.
func actionOf(cs *ast.CodeSpan, source []byte) (string, text.Segment, bool) {
	if cs.ChildCount() != 1 {
		return "", text.Segment{}, false
	}
	t, ok := cs.FirstChild().(*ast.Text)
	if !ok {
		return "", text.Segment{}, false
	}
	seg := t.Segment
	v := string(seg.Value(source))
	if len(v) < 2 || v[0] != '[' || v[len(v)-1] != ']' || strings.ContainsAny(v[1:len(v)-1], "[]") {
		return "", text.Segment{}, false
	}
	start, stop := seg.Start-1, seg.Stop+1
	if start < 0 || stop > len(source) || source[start] != '`' || source[stop-1] != '`' {
		return "", text.Segment{}, false
	}
	if start > 0 && source[start-1] == '`' || stop < len(source) && source[stop] == '`' {
		return "", text.Segment{}, false
	}
	return v[1 : len(v)-1], text.NewSegment(start, stop), true
}

type actionHTMLRenderer struct{}

func (r *actionHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindInlineAction, r.renderAction)
}

func (r *actionHTMLRenderer) renderAction(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	label, class := ActionWidget(n.(*InlineActionNode).Tag)
	fmt.Fprintf(w, `<span class="%s">%s</span>`, class, html.EscapeString(label))
	return ast.WalkSkipChildren, nil
}

type actionExtension struct{}

// InlineActions turns `[tag]` code spans into action markers. They
// render as span elements with the action classes.
var InlineActions goldmark.Extender = &actionExtension{}

func (e *actionExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&actionTransformer{}, actionTransformerPriority),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&actionHTMLRenderer{}, actionRendererPriority),
		),
	)
}
