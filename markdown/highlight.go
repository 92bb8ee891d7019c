package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindHighlight is the goldmark node kind of a ==highlight== span.
var KindHighlight = ast.NewNodeKind("Highlight")

const (
	highlightParserPriority   = 400
	highlightRendererPriority = 500
)

// HighlightNode is a ==text== span. Its children are the inline content
// between the delimiters.
type HighlightNode struct {
	ast.BaseInline
}

// Kind implements ast.Node.
func (n *HighlightNode) Kind() ast.NodeKind {
	return KindHighlight
}

// Dump implements ast.Node.
func (n *HighlightNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type highlightDelimiterProcessor struct{}

func (p *highlightDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '='
}

func (p *highlightDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char && opener.Length >= 2 && closer.Length >= 2
}

func (p *highlightDelimiterProcessor) OnMatch(consumes int) ast.Node {
	return &HighlightNode{}
}

var highlightDelimiters = &highlightDelimiterProcessor{}

// highlightParser pushes "==" delimiters. Whether a run can open or close
// follows the flanking rules of emphasis. A run of three or more '='
// never delimits, and neither does any part of it.
type highlightParser struct{}

func (p *highlightParser) Trigger() []byte {
	return []byte{'='}
}

func (p *highlightParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 2, highlightDelimiters)
	if node == nil || node.OriginalLength != 2 || before == '=' {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

type highlightHTMLRenderer struct{}

func (r *highlightHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindHighlight, r.renderHighlight)
}

func (r *highlightHTMLRenderer) renderHighlight(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<mark>")
	} else {
		_, _ = w.WriteString("</mark>")
	}
	return ast.WalkContinue, nil
}

type highlightExtension struct{}

// Highlighting adds ==highlight== spans to goldmark. They render as
// <mark> elements.
var Highlighting goldmark.Extender = &highlightExtension{}

func (e *highlightExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(&highlightParser{}, highlightParserPriority),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&highlightHTMLRenderer{}, highlightRendererPriority),
		),
	)
}
