// Package region finds stat block regions in a host document tree and
// reconstructs their text so that it stays aligned with document offsets.
package region

import (
	"log/slog"
	"strings"

	"github.com/rjkroege/statblock/doctree"
	"github.com/rjkroege/statblock/traits"
)

// Default fence openers.
const (
	StandardOpener = "```pf2e-stats"
	AltOpener      = "```sf2e-stats"
)

// Region is one fenced stat block. Start+len(Text) is the offset of the
// closing fence. LanguageOverride is empty unless a level four heading in
// the region names a locale.
type Region struct {
	Text             string
	Start            int
	Variant          traits.Variant
	LanguageOverride string
}

// End returns the document offset just past Text.
func (r *Region) End() int {
	return r.Start + len(r.Text)
}

// Option configures Extract.
type Option func(*extractor)

// WithOpeners is an Option that replaces the recognized fence openers.
func WithOpeners(openers map[string]traits.Variant) Option {
	return func(e *extractor) {
		e.openers = openers
	}
}

// WithLogger is an Option that sets the logger for structural problems.
func WithLogger(l *slog.Logger) Option {
	return func(e *extractor) {
		e.log = l
	}
}

type extractor struct {
	openers map[string]traits.Variant
	log     *slog.Logger
	doc     string

	cur *pending
	out []Region
}

type pending struct {
	variant traits.Variant
	opener  int
	text    strings.Builder
	start   int
	lastEnd int
	hasLine bool
}

// Extract returns the regions of doc in document order. root is the
// host tree over doc. Malformed fences are logged and skipped; Extract
// never fails.
func Extract(root *doctree.Node, doc string, opts ...Option) []Region {
	e := &extractor{
		openers: map[string]traits.Variant{
			StandardOpener: traits.Standard,
			AltOpener:      traits.AltRuleset,
		},
		log: slog.Default(),
		doc: doc,
	}
	for _, o := range opts {
		o(e)
	}
	e.visit(root)
	if e.cur != nil {
		e.log.Warn("unterminated stat block dropped", "opener", e.cur.opener)
		e.cur = nil
	}
	return e.out
}

// FromDoc is Extract over a host document.
func FromDoc(d doctree.Doc, opts ...Option) []Region {
	return Extract(d.Root, d.Source, opts...)
}

func (e *extractor) visit(n *doctree.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case doctree.FenceBegin:
		e.begin(n)
		return
	case doctree.FenceEnd:
		e.end(n)
		return
	case doctree.CodeLine:
		e.line(n)
		return
	}
	for _, c := range n.Children {
		e.visit(c)
	}
}

func (e *extractor) begin(n *doctree.Node) {
	if e.cur != nil {
		// Fences do not nest. The nested opener starts nothing.
		e.log.Warn("fence opened inside stat block, region abandoned",
			"opener", e.cur.opener, "offset", n.From)
		e.cur = nil
		return
	}
	v, ok := e.openers[e.text(n)]
	if !ok {
		return
	}
	e.cur = &pending{variant: v, opener: n.From}
}

func (e *extractor) line(n *doctree.Node) {
	p := e.cur
	if p == nil {
		return
	}
	if !p.hasLine {
		p.start = n.From
		p.hasLine = true
	} else if n.From < p.lastEnd {
		e.log.Warn("overlapping code line skipped", "offset", n.From, "previous_end", p.lastEnd)
		return
	} else {
		fill(p, e.doc, n.From)
	}
	p.text.WriteString(e.text(n))
	p.lastEnd = p.start + p.text.Len()
}

func (e *extractor) end(n *doctree.Node) {
	p := e.cur
	if p == nil {
		return
	}
	e.cur = nil
	if !p.hasLine {
		p.start = n.From
	} else {
		fill(p, e.doc, n.From)
	}
	e.out = append(e.out, Region{
		Text:    p.text.String(),
		Start:   p.start,
		Variant: p.variant,
	})
}

// fill pads the text of p up to offset to. Line breaks and blanks the
// host tree does not report are copied from doc; anything else becomes a
// newline.
func fill(p *pending, doc string, to int) {
	for i := p.start + p.text.Len(); i < to; i++ {
		c := byte('\n')
		if i < len(doc) {
			switch doc[i] {
			case ' ', '\t', '\r':
				c = doc[i]
			}
		}
		p.text.WriteByte(c)
	}
	p.lastEnd = to
}

func (e *extractor) text(n *doctree.Node) string {
	from, to := n.From, n.To
	if to > len(e.doc) {
		to = len(e.doc)
	}
	if from < 0 || from > to {
		return ""
	}
	return e.doc[from:to]
}
