// Package decorate projects parsed stat block regions onto decorations
// over the document text for the editing presentation.
package decorate

import (
	"log/slog"
	"strings"

	"github.com/rjkroege/statblock/markdown"
	"github.com/rjkroege/statblock/region"
	"github.com/rjkroege/statblock/rich"
	"github.com/rjkroege/statblock/traits"
)

// Start priorities. Lower values sort first among decorations that start
// at the same offset.
const (
	priorityBlock   = -1
	priorityHeading = 0
	priorityList    = 0
	priorityInline  = 1
	priorityAction  = 2
)

// rule says how one node kind is decorated.
type rule struct {
	class    string
	priority int
	descend  bool
}

var rules = map[markdown.Kind]rule{
	markdown.Heading1:       {rich.ClassH1, priorityHeading, true},
	markdown.Heading2:       {rich.ClassH2, priorityHeading, false},
	markdown.Heading3:       {rich.ClassH3, priorityHeading, false},
	markdown.Heading4:       {rich.ClassH4, priorityHeading, false},
	markdown.Paragraph:      {rich.ClassParagraph, priorityBlock, true},
	markdown.Emphasis:       {rich.ClassItalic, priorityInline, true},
	markdown.StrongEmphasis: {rich.ClassBold, priorityInline, true},
	markdown.InlineAction:   {rich.ClassActionSource, priorityAction, false},
	markdown.Highlight:      {rich.ClassMark, priorityInline, false},
	markdown.ListItem:       {rich.ClassListItem, priorityBlock, true},
	markdown.BulletList:     {rich.ClassBulletList, priorityList, true},
	markdown.OrderedList:    {rich.ClassOrderedList, priorityList, true},
}

// minActionLen is the shortest action source that gets decorated.
const minActionLen = 4

// Projector turns parse trees into decorations. It keeps no state
// between calls.
type Projector struct {
	classifier *traits.Classifier
	log        *slog.Logger
	onError    func(error)
}

// Option configures a Projector.
type Option func(*Projector)

// WithClassifier is an Option that sets the trait classifier.
func WithClassifier(c *traits.Classifier) Option {
	return func(p *Projector) {
		p.classifier = c
	}
}

// WithLogger is an Option that sets the logger for skipped decorations.
func WithLogger(l *slog.Logger) Option {
	return func(p *Projector) {
		p.log = l
	}
}

// WithErrorHook is an Option that registers f to see every decoration
// that was skipped.
func WithErrorHook(f func(error)) Option {
	return func(p *Projector) {
		p.onError = f
	}
}

// New returns a Projector using the embedded trait tables.
func New(opts ...Option) *Projector {
	p := &Projector{
		classifier: traits.Default(),
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Project walks root, the parse of r.Text, and returns the decorations in
// document coordinates ordered by (From, Priority, emission order). A
// level four heading sets r.LanguageOverride for the highlights after
// it. locale is the ambient locale.
func (p *Projector) Project(r *region.Region, root *markdown.Node, locale string) []rich.Decoration {
	w := &walk{p: p, r: r, locale: locale}
	r.LanguageOverride = ""
	w.visit(root)
	return w.set.Sorted()
}

// Region parses r and projects it.
func (p *Projector) Region(r *region.Region, locale string) []rich.Decoration {
	return p.Project(r, markdown.Parse(r.Text), locale)
}

// Regions projects every region. Regions do not overlap, so the result
// keeps the per region order.
func (p *Projector) Regions(rs []region.Region, locale string) []rich.Decoration {
	var out []rich.Decoration
	for i := range rs {
		out = append(out, p.Region(&rs[i], locale)...)
	}
	return out
}

type walk struct {
	p      *Projector
	r      *region.Region
	locale string
	set    rich.Set
}

func (w *walk) visit(n *markdown.Node) {
	if n == nil {
		return
	}
	if n.Kind == markdown.Document {
		w.children(n)
		return
	}
	ru, ok := rules[n.Kind]
	if !ok {
		return
	}

	class := ru.class
	switch n.Kind {
	case markdown.Heading4:
		w.r.LanguageOverride = w.slice(n.From+5, n.To)
	case markdown.Highlight:
		trait := w.slice(n.From+2, n.To-2)
		class = rich.Classes(class, w.p.classifier.Class(trait, w.r.Variant, w.r.LanguageOverride, w.locale))
	case markdown.InlineAction:
		if n.To-n.From < minActionLen {
			return
		}
	}

	w.mark(n, class, ru.priority)
	if n.Kind == markdown.InlineAction {
		label, wclass := markdown.ActionWidget(n.Tag)
		w.add(rich.NewWidget(w.r.Start+n.To, wclass, label, priorityAction))
	}
	if ru.descend {
		w.children(n)
	}
}

func (w *walk) children(n *markdown.Node) {
	for _, c := range n.Children {
		w.visit(c)
	}
}

func (w *walk) mark(n *markdown.Node, class string, priority int) {
	w.add(rich.NewMark(w.r.Start+n.From, w.r.Start+n.To, rich.Classes(rich.ClassLive, class), priority))
}

func (w *walk) add(d rich.Decoration, err error) {
	if err != nil {
		w.p.log.Warn("decoration skipped", "region", w.r.Start, "err", err)
		if w.p.onError != nil {
			w.p.onError(err)
		}
		return
	}
	w.set.Add(d)
}

// slice returns the trimmed region text in [from, to), or "" when the
// range does not fit the text.
func (w *walk) slice(from, to int) string {
	if from < 0 || to > len(w.r.Text) || from >= to {
		return ""
	}
	return strings.TrimSpace(w.r.Text[from:to])
}
