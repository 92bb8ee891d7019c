package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rjkroege/statblock/doctree"
	"github.com/rjkroege/statblock/live"
	"github.com/rjkroege/statblock/region"
	"github.com/rjkroege/statblock/rich"
)

const goblin = "intro\n```pf2e-stats\n# Goblin\n**Speed** 25\n```\n"

func writeDoc(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goblin.md")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("STATBLOCK_LOCALE", "")
	var out, errs bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errs)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("statblock %v: %v\nstderr:\n%s", args, err, errs.String())
	}
	return out.String()
}

func TestRegionsCommand(t *testing.T) {
	got := run(t, "regions", writeDoc(t, goblin))
	if want := "20\tpf2e\t22\t\"# Goblin\"\n"; got != want {
		t.Errorf("regions = %q, want %q", got, want)
	}
}

func TestDecorateJSON(t *testing.T) {
	var ds []decorationJSON
	if err := json.Unmarshal([]byte(run(t, "decorate", "--json", writeDoc(t, goblin))), &ds); err != nil {
		t.Fatalf("decorate output is not JSON: %v", err)
	}
	for _, d := range ds {
		if rich.HasClass(d.Class, rich.ClassH1) {
			if d.From != 20 || d.To != 28 || d.Kind != "mark" {
				t.Errorf("heading decoration = %+v", d)
			}
			return
		}
	}
	t.Errorf("no heading decoration in %+v", ds)
}

func TestShowPlain(t *testing.T) {
	got := run(t, "show", "--plain", writeDoc(t, goblin))
	if want := "# Goblin\n**Speed** 25\n\n"; got != want {
		t.Errorf("show = %q, want %q", got, want)
	}
}

func TestRenderCommand(t *testing.T) {
	got := run(t, "render", writeDoc(t, goblin))
	for _, want := range []string{`class="pf2e-statblock"`, "<h1>Goblin</h1>", "<strong>Speed</strong>"} {
		if !strings.Contains(got, want) {
			t.Errorf("render output lacks %q:\n%s", want, got)
		}
	}
}

func TestMissingFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"regions", filepath.Join(t.TempDir(), "absent.md")})
	if err := cmd.Execute(); !os.IsNotExist(err) {
		t.Errorf("err = %v, want not exist", err)
	}
}

func TestWriteState(t *testing.T) {
	mark, err := rich.NewMark(3, 9, "pf2e-live pf2e-mark pf2e-trait-rare", 1)
	if err != nil {
		t.Fatal(err)
	}
	widget, err := rich.NewWidget(12, "pf2e-action pf2e-reaction", "reaction", 2)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = writeState(&b, live.State{
		Regions:     []region.Region{{Text: "\n==rare==\n", Start: 2}},
		Decorations: []rich.Decoration{mark, widget},
		Locale:      "de",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`1 regions, 2 decorations, locale "de"`,
		"2\tpf2e\t10\t\"==rare==\"",
		"3-9\tmark\tpf2e-live pf2e-mark pf2e-trait-rare",
		"12\twidget\tpf2e-action pf2e-reaction\t\"reaction\"",
		"",
	}, "\n")
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("writeState mismatch (-want +got):\n%s", diff)
	}
}

func TestServeMetrics(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	var logs bytes.Buffer
	s := &settings{log: slog.New(slog.NewTextHandler(&logs, nil))}
	reg := prometheus.NewRegistry()
	live.NewOverlay(live.WithRegisterer(reg)).Update(doctree.Doc{Root: doctree.Build(nil)})

	ctx, cancel := context.WithCancel(context.Background())
	s.serveMetrics(ctx, addr, reg)

	var body []byte
	for i := 0; i < 50; i++ {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err == nil {
			body, err = io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				t.Fatal(err)
			}
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !strings.Contains(string(body), "statblock_recomputes_total 1") {
		t.Errorf("metrics lack the recompute count:\n%s", body)
	}

	cancel()
	for i := 0; i < 50; i++ {
		if _, err := http.Get("http://" + addr + "/metrics"); err != nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("unexpected warnings:\n%s", logs.String())
	}
}
