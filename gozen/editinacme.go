// Package gozen connects the stat block overlay to acme and edwood
// windows.
package gozen

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"9fans.net/go/acme"
)

// Attach opens an existing window named by target, which is either a
// window id or a window name. It also returns the window's name.
func Attach(target string) (*acme.Win, string, error) {
	wins, err := acme.Windows()
	if err != nil {
		return nil, "", fmt.Errorf("gozen acme.Windows list was not available: %v", err)
	}
	id, iderr := strconv.Atoi(target)
	for _, wi := range wins {
		if (iderr == nil && wi.ID == id) || wi.Name == target {
			win, err := acme.Open(wi.ID, nil)
			if err != nil {
				return nil, "", fmt.Errorf("gozen acme.Open %d: %v", wi.ID, err)
			}
			return win, wi.Name, nil
		}
	}
	return nil, "", fmt.Errorf("gozen no window %q", target)
}

// StatsName is the name of the report window for the window called name.
func StatsName(name string) string {
	return filepath.Join(filepath.Dir(name), "+Stats")
}

func lookup(name string) (int, error) {
	wins, err := acme.Windows()
	if err != nil {
		return 0, fmt.Errorf("gozen acme.Windows list was not available: %v", err)
	}
	for _, wi := range wins {
		if wi.Name == name {
			return wi.ID, nil
		}
	}
	return 0, fmt.Errorf("gozen no window named %q", name)
}

// OpenWin returns the window called name, creating it if needed. The
// options are applied to the window in order.
func OpenWin(name string, opts ...Option) (*acme.Win, error) {
	var win *acme.Win
	if id, err := lookup(name); err == nil {
		win, err = acme.Open(id, nil)
		if err != nil {
			return nil, fmt.Errorf("gozen acme.Open: %v", err)
		}
	}

	wasnew := false
	if win == nil {
		slog.Debug("gozen making a new window", "name", name)
		wasnew = true
		var err error
		win, err = acme.New()
		if err != nil {
			return nil, fmt.Errorf("gozen acme.New: %v", err)
		}
		if err := win.Name(name); err != nil {
			return nil, fmt.Errorf("gozen win.Name: %v", err)
		}
	}

	allerrs := make([]error, 0)
	for _, opt := range opts {
		allerrs = append(allerrs, opt(win, wasnew))
	}
	return win, errors.Join(allerrs...)
}
