// Package live keeps the decoration overlay of the editing presentation
// up to date. Every edit triggers a full recompute; nothing is carried
// over from the previous result.
package live

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rjkroege/statblock/decorate"
	"github.com/rjkroege/statblock/doctree"
	"github.com/rjkroege/statblock/region"
	"github.com/rjkroege/statblock/rich"
	"github.com/rjkroege/statblock/traits"
)

// EditRecord describes a single edit the host applied to the document.
type EditRecord struct {
	Pos int // byte offset where the edit occurred
	// OldLen is the length removed (0 for pure insert), in bytes. Hosts
	// that cannot see the removed text report runes instead; acme does.
	OldLen int
	NewLen int // bytes inserted (0 for pure delete)
}

// State is the result of one recompute.
type State struct {
	Regions     []region.Region
	Decorations []rich.Decoration
	Locale      string
}

// Overlay recomputes decorations for a document. It is used from one
// goroutine; the host serializes edits.
type Overlay struct {
	locale     traits.LocaleSource
	classifier *traits.Classifier
	log        *slog.Logger
	registerer prometheus.Registerer
	openers    map[string]traits.Variant

	projector *decorate.Projector
	metrics   *Metrics
	last      State
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithLocale is an Option that sets the source of the ambient locale.
func WithLocale(s traits.LocaleSource) Option {
	return func(o *Overlay) {
		o.locale = s
	}
}

// WithClassifier is an Option that sets the trait classifier.
func WithClassifier(c *traits.Classifier) Option {
	return func(o *Overlay) {
		o.classifier = c
	}
}

// WithLogger is an Option that sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Overlay) {
		o.log = l
	}
}

// WithRegisterer is an Option that registers the overlay metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Overlay) {
		o.registerer = reg
	}
}

// WithOpeners is an Option that replaces the recognized fence openers.
func WithOpeners(openers map[string]traits.Variant) Option {
	return func(o *Overlay) {
		o.openers = openers
	}
}

// NewOverlay returns an Overlay with an empty State.
func NewOverlay(opts ...Option) *Overlay {
	o := &Overlay{
		locale:     traits.StaticLocale(""),
		classifier: traits.Default(),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.metrics = NewMetrics(o.registerer)
	o.projector = decorate.New(
		decorate.WithClassifier(o.classifier),
		decorate.WithLogger(o.log),
		decorate.WithErrorHook(func(error) { o.metrics.DecorationErrors.Inc() }),
	)
	return o
}

// Metrics returns the overlay's metrics.
func (o *Overlay) Metrics() *Metrics {
	return o.metrics
}

// State returns the result of the last recompute.
func (o *Overlay) State() State {
	return o.last
}

// Update extracts the regions of doc and decorates them. The ambient
// locale is read once. The result replaces the previous State.
func (o *Overlay) Update(doc doctree.Doc) State {
	start := time.Now()
	locale := o.locale.Locale()

	ropts := []region.Option{region.WithLogger(o.log)}
	if o.openers != nil {
		ropts = append(ropts, region.WithOpeners(o.openers))
	}
	regions := region.FromDoc(doc, ropts...)
	decorations := o.projector.Regions(regions, locale)

	o.last = State{Regions: regions, Decorations: decorations, Locale: locale}
	o.metrics.Recomputes.Inc()
	o.metrics.Regions.Add(float64(len(regions)))
	o.metrics.RecomputeSeconds.Observe(time.Since(start).Seconds())
	o.log.Debug("overlay recomputed", "regions", len(regions), "decorations", len(decorations), "locale", locale)
	return o.last
}

// Apply is the host's edit notification. The edits are only logged;
// the whole document is recomputed.
func (o *Overlay) Apply(edits []EditRecord, doc doctree.Doc) State {
	for _, e := range edits {
		o.log.Debug("edit", "pos", e.Pos, "removed", e.OldLen, "inserted", e.NewLen)
	}
	return o.Update(doc)
}
