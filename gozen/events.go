package gozen

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"9fans.net/go/acme"

	"github.com/rjkroege/statblock/live"
)

// RecomputeCommand is the tag command that asks for a recompute without
// an edit.
const RecomputeCommand = "Stats"

// ChangeFunc receives the window body after its edits. edits is empty
// for the initial call and for an explicit recompute.
type ChangeFunc func(body []byte, edits []live.EditRecord) error

// Follow takes over win's event file and calls onChange for every batch
// of body edits until ctx is done or the window goes away. Events it
// does not handle are given back to acme.
func Follow(ctx context.Context, win *acme.Win, onChange ChangeFunc) error {
	call := func(edits []*acme.Event) error {
		body, err := win.ReadAll("body")
		if err != nil {
			return fmt.Errorf("gozen win.ReadAll body: %v", err)
		}
		recs := make([]live.EditRecord, 0, len(edits))
		for _, e := range edits {
			recs = append(recs, EditRecord(e, body))
		}
		return onChange(body, recs)
	}
	if err := call(nil); err != nil {
		return err
	}

	events := win.EventChan()
	for {
		var e *acme.Event
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case e, ok = <-events:
			if !ok {
				return nil
			}
		}

		// Gather the edits already queued so one body read serves them all.
		var edits []*acme.Event
		recompute := false
	drain:
		for {
			switch {
			case isBodyEdit(e):
				edits = append(edits, e)
			case isCommand(e) && string(e.Text) == RecomputeCommand:
				recompute = true
			case isCommand(e), e.C2 == 'l' || e.C2 == 'L':
				if err := win.WriteEvent(e); err != nil {
					slog.Warn("gozen WriteEvent", "err", err)
				}
			}
			select {
			case e, ok = <-events:
				if !ok {
					break drain
				}
			default:
				break drain
			}
		}

		if len(edits) > 0 || recompute {
			if err := call(edits); err != nil {
				return err
			}
		}
		if !ok {
			return nil
		}
	}
}

func isBodyEdit(e *acme.Event) bool {
	return e.C2 == 'I' || e.C2 == 'D'
}

func isCommand(e *acme.Event) bool {
	return e.C2 == 'x' || e.C2 == 'X'
}

// EditRecord converts a body insert or delete event to byte offsets in
// body, the text after the edit. A delete's length is counted in runes
// because the removed text is gone.
func EditRecord(e *acme.Event, body []byte) live.EditRecord {
	pos := byteOffset(body, e.Q0)
	if e.C2 == 'D' {
		return live.EditRecord{Pos: pos, OldLen: e.Q1 - e.Q0}
	}
	return live.EditRecord{Pos: pos, NewLen: byteOffset(body, e.Q1) - pos}
}

// byteOffset returns the byte offset of rune q in b, clipped to len(b).
func byteOffset(b []byte, q int) int {
	off := 0
	for i := 0; i < q && off < len(b); i++ {
		_, n := utf8.DecodeRune(b[off:])
		off += n
	}
	return off
}
