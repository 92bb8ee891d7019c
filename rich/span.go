// Package rich holds the decoration model of the editing presentation:
// styled ranges and zero-width widgets over document text.
package rich

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidRange is returned for a decoration whose range cannot be
// applied.
var ErrInvalidRange = errors.New("invalid decoration range")

// Kind distinguishes styled ranges from inserted widgets.
type Kind int

const (
	Mark Kind = iota
	Widget
)

func (k Kind) String() string {
	if k == Widget {
		return "widget"
	}
	return "mark"
}

// Decoration styles [From, To) in document coordinates without changing
// the text. Widgets are zero width and carry Text.
type Decoration struct {
	From     int
	To       int
	Class    string
	Priority int
	Kind     Kind
	Text     string

	seq int
}

// NewMark returns a mark over [from, to). Empty or inverted ranges are
// rejected.
func NewMark(from, to int, class string, priority int) (Decoration, error) {
	if from < 0 || to <= from {
		return Decoration{}, fmt.Errorf("mark [%d, %d) %q: %w", from, to, class, ErrInvalidRange)
	}
	return Decoration{From: from, To: to, Class: class, Priority: priority, Kind: Mark}, nil
}

// NewWidget returns a zero width widget at pos.
func NewWidget(pos int, class, text string, priority int) (Decoration, error) {
	if pos < 0 {
		return Decoration{}, fmt.Errorf("widget at %d %q: %w", pos, class, ErrInvalidRange)
	}
	return Decoration{From: pos, To: pos, Class: class, Priority: priority, Kind: Widget, Text: text}, nil
}

// Shift returns d moved by delta.
func (d Decoration) Shift(delta int) Decoration {
	d.From += delta
	d.To += delta
	return d
}

// Set accumulates decorations in insertion order.
type Set struct {
	items []Decoration
}

// Add appends d, recording its insertion sequence.
func (s *Set) Add(d Decoration) {
	d.seq = len(s.items)
	s.items = append(s.items, d)
}

// Len returns the number of decorations added.
func (s *Set) Len() int {
	return len(s.items)
}

// Sorted returns the decorations ordered by (From, Priority, insertion).
// The order is total, so identical input always yields identical output.
func (s *Set) Sorted() []Decoration {
	out := make([]Decoration, len(s.items))
	copy(out, s.items)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.seq < b.seq
	})
	return out
}
