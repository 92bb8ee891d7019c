package gozen

import (
	"io"

	"9fans.net/go/acme"
)

// WindowWriter writes to one file of a window.
type WindowWriter struct {
	dest string
	win  *acme.Win
}

func NewWindowWriter(dest string, win *acme.Win) *WindowWriter {
	return &WindowWriter{
		dest: dest,
		win:  win,
	}
}

func (w *WindowWriter) Write(p []byte) (n int, err error) {
	return w.win.Write(w.dest, p)
}

// Replace swaps the window body for text and marks the window clean.
func (w *WindowWriter) Replace(text string) error {
	w.win.Clear()
	if _, err := w.win.Write("body", []byte(text)); err != nil {
		return err
	}
	if err := w.win.Ctl("clean"); err != nil {
		return err
	}
	return w.win.Addr("#0")
}

var _ io.Writer = (*WindowWriter)(nil)
