package indent

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const tab = `<span class="pf2e-tab"></span>`

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	div := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	nodes, err := html.ParseFragment(strings.NewReader(s), div)
	if err != nil {
		t.Fatalf("ParseFragment(%q): %v", s, err)
	}
	for _, n := range nodes {
		div.AppendChild(n)
	}
	return div
}

func inner(t *testing.T, n *html.Node) string {
	t.Helper()
	var b bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			t.Fatalf("Render: %v", err)
		}
	}
	return b.String()
}

var reconstructTests = []struct {
	name string
	in   string
	want string
}{
	{
		name: "subentries",
		in:   "<p><strong>Perception</strong> +5<br>\n" + tab + "<strong>Skills</strong> Acrobatics</p>",
		want: `<p class="pf2e-subentry"><strong>Perception</strong> +5</p>` +
			`<p class="pf2e-indent-1 pf2e-subentry"><strong>Skills</strong> Acrobatics</p>`,
	},
	{
		name: "nested lists",
		in: "<p>Items<br>\n" +
			tab + "- one<br>\n" +
			tab + "- two<br>\n" +
			tab + tab + "- deep<br>\n" +
			tab + "- three<br>\n" +
			"After</p>",
		want: `<p>Items</p>` +
			`<ul class="pf2e-indent-1">` +
			`<li class="pf2e-indent-1">one</li>` +
			`<li class="pf2e-indent-1">two<ul class="pf2e-indent-2"><li class="pf2e-indent-2">deep</li></ul></li>` +
			`<li class="pf2e-indent-1">three</li>` +
			`</ul>` +
			`<p>After</p>`,
	},
	{
		name: "list closed by plain line",
		in:   "<p>" + tab + "- a<br>\n" + tab + "b<br>\n" + tab + "- c</p>",
		want: `<ul class="pf2e-indent-1"><li class="pf2e-indent-1">a</li></ul>` +
			`<p class="pf2e-indent-1">b</p>` +
			`<ul class="pf2e-indent-1"><li class="pf2e-indent-1">c</li></ul>`,
	},
	{
		name: "continuation",
		in:   "<p>one<br>\ntwo</p>",
		want: `<p>one</p><p class="pf2e-2nd-paragraph">two</p>`,
	},
	{
		name: "level change is not continuation",
		in:   "<p>one<br>\n" + tab + "two</p>",
		want: `<p>one</p><p class="pf2e-indent-1">two</p>`,
	},
	{
		name: "dash at level zero stays text",
		in:   "<p>a<br>\n- b</p>",
		want: `<p>a</p><p class="pf2e-2nd-paragraph">- b</p>`,
	},
	{
		name: "single indented paragraph",
		in:   "<p>" + tab + tab + "text</p>",
		want: `<p class="pf2e-indent-2">text</p>`,
	},
	{
		name: "untouched",
		in:   "<h1>Goblin</h1><p>plain <em>text</em></p>",
		want: "<h1>Goblin</h1><p>plain <em>text</em></p>",
	},
}

func TestReconstruct(t *testing.T) {
	for _, tc := range reconstructTests {
		t.Run(tc.name, func(t *testing.T) {
			div := parse(t, tc.in)
			Reconstruct(div)
			if got := inner(t, div); got != tc.want {
				t.Errorf("Reconstruct(%q)\n got %s\nwant %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestReconstructIdempotent(t *testing.T) {
	for _, tc := range reconstructTests {
		t.Run(tc.name, func(t *testing.T) {
			div := parse(t, tc.in)
			Reconstruct(div)
			once := inner(t, div)
			Reconstruct(div)
			if twice := inner(t, div); twice != once {
				t.Errorf("second Reconstruct changed output\nonce  %s\ntwice %s", once, twice)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	div := parse(t, "<p><strong>Melee</strong> jaws<br>\nA bite.<br>\nIt hurts.</p>")
	Reconstruct(div)

	type flags struct {
		level        int
		subentry     bool
		continuation bool
	}
	var got []flags
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		got = append(got, flags{Level(c), IsSubentry(c), IsContinuation(c)})
	}
	want := []flags{
		{0, true, false},
		{0, false, false},
		{0, false, true},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d flags %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a\n\tb\n", "a\n" + tab + "b\n"},
		{"    c", tab + "c"},
		{"　　d", tab + tab + "d"},
		{"\t    \te", tab + tab + tab + "e"},
		{"   x", "   x"},
		{"a\n\t\n\nb", "a\n\t\n\nb"},
		{"mid\tline", "mid\tline"},
	}
	for _, tc := range tests {
		if got := Substitute(tc.in); got != tc.want {
			t.Errorf("Substitute(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
