package doctree

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"HyperMD-codeblock-begin", FenceBegin},
		{"HyperMD-codeblock HyperMD-codeblock-begin HyperMD-codeblock-bg", FenceBegin},
		{"HyperMD-codeblock_HyperMD-codeblock-end", FenceEnd},
		{"HyperMD-codeblock HyperMD-codeblock-bg", CodeLine},
		{"HyperMD-header-4", Other},
		{"", Other},
	}
	for _, tc := range tests {
		if got := KindOf(tc.name); got != tc.want {
			t.Errorf("KindOf(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBuild(t *testing.T) {
	root := Build([]Token{
		{Name: HostCodeLine, From: 14, To: 20},
		{Name: HostFenceBegin, From: 0, To: 13},
		{Name: HostFenceEnd, From: 21, To: 24},
		{Name: HostCodeLine, From: 9, To: 3},
	})
	want := &Node{Kind: Document, To: 24, Children: []*Node{
		{Kind: FenceBegin, From: 0, To: 13},
		{Kind: CodeLine, From: 14, To: 20},
		{Kind: FenceEnd, From: 21, To: 24},
	}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestDocText(t *testing.T) {
	d := Doc{Source: "abcdef"}
	if got := d.Text(&Node{From: 1, To: 3}); got != "bc" {
		t.Errorf("Text = %q", got)
	}
	if got := d.Text(&Node{From: 4, To: 99}); got != "ef" {
		t.Errorf("clipped Text = %q", got)
	}
	if got := d.Text(&Node{From: 9, To: 12}); got != "" {
		t.Errorf("out of range Text = %q", got)
	}
}

func TestParseMarkdown(t *testing.T) {
	src := "intro\n\n```pf2e-stats\n# Goblin\n\n**Speed** 25\n```\n\ntail\n"
	doc, err := ParseMarkdown(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	type line struct {
		Kind Kind
		Text string
	}
	var got []line
	for _, n := range doc.Root.Children {
		got = append(got, line{n.Kind, doc.Text(n)})
	}
	want := []line{
		{FenceBegin, "```pf2e-stats"},
		{CodeLine, "# Goblin"},
		{CodeLine, "**Speed** 25"},
		{FenceEnd, "```"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseMarkdown lines mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMarkdownCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ParseMarkdown(ctx, []byte("```pf2e-stats\n```\n")); err == nil {
		t.Error("ParseMarkdown with canceled context succeeded")
	}
}
