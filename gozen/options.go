package gozen

import (
	"9fans.net/go/acme"
)

// Option customizes a window opened by OpenWin. wasnew is set when the
// window was created by the call.
type Option func(win *acme.Win, wasnew bool) error

// Addtotag returns an Option that adds v to the tag of a new window.
func Addtotag(v string) Option {
	return func(w *acme.Win, wasnew bool) error {
		if wasnew {
			return w.Fprintf("tag", "%s", v)
		}
		return nil
	}
}

// Scratch returns an Option that stops acme tracking changes to the
// window, so it can be deleted without a warning.
func Scratch() Option {
	return func(w *acme.Win, _ bool) error {
		if err := w.Ctl("nomark"); err != nil {
			return err
		}
		return w.Ctl("clean")
	}
}
