package traits

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedTables(t *testing.T) {
	tables, err := LoadTables(embeddedLocales)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	want := []string{"de", "es", "fr", "ja", "ko", "pl", "pt-br", "ru", "uk", "zh"}
	if diff := cmp.Diff(want, tables.Locales()); diff != "" {
		t.Errorf("locales mismatch (-want +got):\n%s", diff)
	}

	// Every table covers every canonical key exactly once.
	for _, locale := range tables.Locales() {
		seen := map[string]int{}
		for _, key := range tables[locale] {
			seen[key]++
		}
		for key := range canonical {
			if seen[key] != 1 {
				t.Errorf("locale %s: key %q appears %d times", locale, key, seen[key])
			}
		}
	}
}

func TestLoadTablesErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"empty", fstest.MapFS{}},
		{"locale mismatch", fstest.MapFS{
			"locales/de.yaml": {Data: []byte("locale: fr\ntraits:\n  selten: rare\n")},
		}},
		{"unknown key", fstest.MapFS{
			"locales/de.yaml": {Data: []byte("locale: de\ntraits:\n  selten: scarce\n")},
		}},
		{"no traits", fstest.MapFS{
			"locales/de.yaml": {Data: []byte("locale: de\n")},
		}},
		{"duplicate after normalizing", fstest.MapFS{
			"locales/de.yaml": {Data: []byte("locale: de\ntraits:\n  Selten: rare\n  selten: rare\n")},
		}},
		{"not yaml", fstest.MapFS{
			"locales/de.yaml": {Data: []byte("locale: [de\n")},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadTables(tc.fsys)
			if !errors.Is(err, ErrMalformedTable) {
				t.Errorf("LoadTables error = %v, want ErrMalformedTable", err)
			}
		})
	}
}
