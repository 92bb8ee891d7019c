package traits

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformedTable is returned when a locale table file cannot be used.
var ErrMalformedTable = errors.New("malformed trait table")

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type tableFile struct {
	Locale string            `yaml:"locale"`
	Traits map[string]string `yaml:"traits"`
}

// Tables holds the per-locale translation tables, keyed by lowercase
// locale. Each table maps a normalized surface form to its English key.
type Tables map[string]map[string]string

// Locales returns the sorted locale keys.
func (t Tables) Locales() []string {
	out := make([]string, 0, len(t))
	for l := range t {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// LoadTables reads every locales/*.yaml file of fsys.
func LoadTables(fsys fs.FS) (Tables, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob trait tables: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no trait tables found: %w", ErrMalformedTable)
	}
	sort.Strings(paths)

	tables := Tables{}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read trait table %s: %w", p, err)
		}
		var tf tableFile
		if err := yaml.Unmarshal(data, &tf); err != nil {
			return nil, fmt.Errorf("trait table %s: %v: %w", p, err, ErrMalformedTable)
		}
		if err := tables.add(p, tf); err != nil {
			return nil, err
		}
	}
	return tables, nil
}

func (t Tables) add(p string, tf tableFile) error {
	locale := strings.ToLower(strings.TrimSpace(tf.Locale))
	if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); locale != want {
		return fmt.Errorf("trait table %s: locale %q must match file name %q: %w", p, tf.Locale, want, ErrMalformedTable)
	}
	if _, dup := t[locale]; dup {
		return fmt.Errorf("trait table %s: locale %q defined twice: %w", p, locale, ErrMalformedTable)
	}
	if len(tf.Traits) == 0 {
		return fmt.Errorf("trait table %s: no traits: %w", p, ErrMalformedTable)
	}

	table := make(map[string]string, len(tf.Traits))
	for surface, key := range tf.Traits {
		surface = normalize(surface)
		if surface == "" {
			return fmt.Errorf("trait table %s: blank surface form: %w", p, ErrMalformedTable)
		}
		if _, ok := canonical[key]; !ok {
			return fmt.Errorf("trait table %s: %q maps to unknown key %q: %w", p, surface, key, ErrMalformedTable)
		}
		if _, dup := table[surface]; dup {
			return fmt.Errorf("trait table %s: %q defined twice: %w", p, surface, ErrMalformedTable)
		}
		table[surface] = key
	}
	t[locale] = table
	return nil
}

func mustLoadEmbedded() Tables {
	t, err := LoadTables(embeddedLocales)
	if err != nil {
		panic(err)
	}
	return t
}
