package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rjkroege/statblock/traits"
)

var _ traits.LocaleSource = (*Config)(nil)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STATBLOCK_LOCALE", "STATBLOCK_DEBUG", "STATBLOCK_DARK", "STATBLOCK_DEBOUNCE", "STATBLOCK_METRICS_ADDR"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{Debounce: 100 * time.Millisecond}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	if c.LogLevel() != slog.LevelWarn {
		t.Errorf("LogLevel = %v", c.LogLevel())
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("STATBLOCK_LOCALE", "pt-BR")
	t.Setenv("STATBLOCK_DEBUG", "true")
	t.Setenv("STATBLOCK_DARK", "1")
	t.Setenv("STATBLOCK_DEBOUNCE", "250ms")
	t.Setenv("STATBLOCK_METRICS_ADDR", ":9090")
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{AmbientLocale: "pt-BR", Debug: true, Dark: true, Debounce: 250 * time.Millisecond, MetricsAddr: ":9090"}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	if c.Locale() != "pt-BR" || c.LogLevel() != slog.LevelDebug {
		t.Errorf("Locale = %q, LogLevel = %v", c.Locale(), c.LogLevel())
	}
}

func TestLoadError(t *testing.T) {
	t.Setenv("STATBLOCK_DEBOUNCE", "soon")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
