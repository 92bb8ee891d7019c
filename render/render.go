// Package render produces the reading presentation of stat block
// regions: HTML with the indentation structure rebuilt and every
// highlighted trait classified.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rjkroege/statblock/doctree"
	"github.com/rjkroege/statblock/indent"
	"github.com/rjkroege/statblock/markdown"
	"github.com/rjkroege/statblock/region"
	"github.com/rjkroege/statblock/rich"
	"github.com/rjkroege/statblock/traits"
)

// Renderer renders regions. It holds only read-only tables, so one
// Renderer may serve concurrent renders.
type Renderer struct {
	classifier *traits.Classifier
	log        *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClassifier is an Option that sets the trait classifier.
func WithClassifier(c *traits.Classifier) Option {
	return func(r *Renderer) {
		r.classifier = c
	}
}

// WithLogger is an Option that sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.log = l
	}
}

// New returns a Renderer using the embedded trait tables.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		classifier: traits.Default(),
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Region renders rg into a new div.pf2e-statblock element. ambient is the
// locale used for traits when the region names none.
func (r *Renderer) Region(rg region.Region, ambient string) (*html.Node, error) {
	src := indent.Substitute(trimBlankLines(rg.Text))

	var buf bytes.Buffer
	if err := markdown.RenderHTML([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("render region at %d: %w", rg.Start, err)
	}

	container := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     atom.Div.String(),
		Attr:     []html.Attribute{{Key: "class", Val: rich.ClassStatblock}},
	}
	nodes, err := html.ParseFragment(&buf, container)
	if err != nil {
		return nil, fmt.Errorf("parse rendered region at %d: %w", rg.Start, err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	indent.Reconstruct(container)
	r.classifyTraits(container, rg.Variant, ambient)
	return container, nil
}

// Document renders every region of doc, one container per region. A
// region that fails to render is logged and left out.
func (r *Renderer) Document(doc doctree.Doc, ambient string) (string, error) {
	var b strings.Builder
	for _, rg := range region.FromDoc(doc, region.WithLogger(r.log)) {
		n, err := r.Region(rg, ambient)
		if err != nil {
			r.log.Warn("region not rendered", "start", rg.Start, "err", err)
			continue
		}
		if err := html.Render(&b, n); err != nil {
			return "", fmt.Errorf("write region at %d: %w", rg.Start, err)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// classifyTraits adds the category class to every <mark>. A level four
// heading sets the language override for the marks after it.
func (r *Renderer) classifyTraits(container *html.Node, v traits.Variant, ambient string) {
	override := ""
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				switch c.DataAtom {
				case atom.H4:
					override = strings.TrimSpace(textOf(c))
					continue
				case atom.Mark:
					addClass(c, r.classifier.Class(textOf(c), v, override, ambient))
					continue
				}
			}
			walk(c)
		}
	}
	walk(container)
}

// trimBlankLines drops leading blank lines and trailing white space. The
// indentation of the first line is kept.
func trimBlankLines(s string) string {
	s = strings.TrimRight(s, " \t\r\n")
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 || strings.TrimSpace(s[:i]) != "" {
			return s
		}
		s = s[i+1:]
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func addClass(n *html.Node, class string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			if !rich.HasClass(a.Val, class) {
				n.Attr[i].Val = rich.Classes(a.Val, class)
			}
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}
