// Package indent rebuilds the indentation structure of a rendered stat
// block. Leading indentation in the source is replaced by tab marker
// elements before rendering; Reconstruct turns the markers, hard breaks
// and dash lines of the rendered paragraphs into indented paragraphs and
// nested lists.
package indent

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rjkroege/statblock/rich"
)

// Placeholder is the tab marker inserted for one indentation token.
const Placeholder = `<span class="` + rich.ClassTab + `"></span>`

const ideographicSpace = "\u3000"

// Substitute replaces the indentation tokens at the start of every line
// of text with Placeholder. A token is a tab, four spaces or an
// ideographic space. Blank lines are kept as they are.
func Substitute(text string) string {
	var b strings.Builder
	for _, l := range strings.SplitAfter(text, "\n") {
		if strings.TrimSpace(l) == "" {
			b.WriteString(l)
			continue
		}
		for {
			rest, ok := cutToken(l)
			if !ok {
				break
			}
			b.WriteString(Placeholder)
			l = rest
		}
		b.WriteString(l)
	}
	return b.String()
}

func cutToken(s string) (string, bool) {
	for _, tok := range []string{"\t", "    ", ideographicSpace} {
		if rest, ok := strings.CutPrefix(s, tok); ok {
			return rest, true
		}
	}
	return s, false
}

// Level returns the indentation level recorded on n.
func Level(n *html.Node) int {
	for _, c := range strings.Fields(attr(n, "class")) {
		if v, ok := strings.CutPrefix(c, rich.ClassIndent); ok {
			if l, err := strconv.Atoi(v); err == nil {
				return l
			}
		}
	}
	return 0
}

// IsSubentry reports whether n was flagged as a subentry.
func IsSubentry(n *html.Node) bool {
	return rich.HasClass(attr(n, "class"), rich.ClassSubentry)
}

// IsContinuation reports whether n was flagged as a continuation
// paragraph.
func IsContinuation(n *html.Node) bool {
	return rich.HasClass(attr(n, "class"), rich.ClassContinuation)
}

// Reconstruct rewrites the paragraphs below container in place. Every
// paragraph holding tab markers or hard breaks is split into indented
// paragraphs and lists. The replacements are all computed before any is
// spliced in, and the splicing runs from the last paragraph to the
// first. Paragraphs without markers or breaks are not touched, so a
// second run changes nothing.
func Reconstruct(container *html.Node) {
	type splice struct {
		p    *html.Node
		repl []*html.Node
	}
	var work []splice
	for _, p := range elements(container, atom.P) {
		if needsSplit(p) {
			work = append(work, splice{p: p, repl: split(p)})
		}
	}
	for i := len(work) - 1; i >= 0; i-- {
		w := work[i]
		parent := w.p.Parent
		for _, n := range w.repl {
			parent.InsertBefore(n, w.p)
		}
		parent.RemoveChild(w.p)
	}
	flag(container)
}

func needsSplit(p *html.Node) bool {
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == atom.Br || isTab(c) {
			return true
		}
	}
	return false
}

type openList struct {
	node  *html.Node
	level int
}

// split detaches the children of p and distributes them over new
// paragraphs and lists, one line at a time.
func split(p *html.Node) []*html.Node {
	var out []*html.Node
	var lists []openList
	for _, line := range lines(p) {
		level, rest := takeTabs(line)
		if level > 0 && startsWithDash(rest) {
			rest = stripDash(rest)
			li := element(atom.Li, level)
			appendAll(li, rest)
			lists = placeItem(lists, &out, li, level)
			continue
		}
		lists = nil
		if len(rest) == 0 {
			continue
		}
		np := element(atom.P, level)
		appendAll(np, rest)
		out = append(out, np)
	}
	return out
}

// placeItem adds li to the list at level, opening a nested list below
// the last item of a shallower list or a new top level list as needed.
func placeItem(lists []openList, out *[]*html.Node, li *html.Node, level int) []openList {
	for len(lists) > 0 && lists[len(lists)-1].level > level {
		lists = lists[:len(lists)-1]
	}
	if n := len(lists); n > 0 && lists[n-1].level == level {
		lists[n-1].node.AppendChild(li)
		return lists
	}
	ul := element(atom.Ul, level)
	ul.AppendChild(li)
	if n := len(lists); n > 0 {
		lists[n-1].node.LastChild.AppendChild(ul)
	} else {
		*out = append(*out, ul)
	}
	return append(lists, openList{node: ul, level: level})
}

// lines detaches the children of p split at <br>. The breaks are
// dropped along with the newline that follows them.
func lines(p *html.Node) [][]*html.Node {
	var kids []*html.Node
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, c)
	}
	var out [][]*html.Node
	var cur []*html.Node
	afterBreak := false
	for _, c := range kids {
		p.RemoveChild(c)
		if c.DataAtom == atom.Br {
			out = append(out, cur)
			cur = nil
			afterBreak = true
			continue
		}
		if afterBreak && c.Type == html.TextNode {
			c.Data = strings.TrimLeft(c.Data, "\r\n")
			if c.Data == "" {
				continue
			}
		}
		afterBreak = false
		cur = append(cur, c)
	}
	return append(out, cur)
}

// takeTabs counts and drops the tab markers that start line.
func takeTabs(line []*html.Node) (int, []*html.Node) {
	level := 0
	for len(line) > 0 && isTab(line[0]) {
		level++
		line = line[1:]
	}
	return level, line
}

func startsWithDash(line []*html.Node) bool {
	return len(line) > 0 && line[0].Type == html.TextNode && strings.HasPrefix(line[0].Data, "- ")
}

func stripDash(line []*html.Node) []*html.Node {
	line[0].Data = strings.TrimPrefix(line[0].Data, "- ")
	if line[0].Data == "" {
		return line[1:]
	}
	return line
}

// flag marks subentries and continuation paragraphs.
func flag(container *html.Node) {
	for _, p := range elements(container, atom.P) {
		if startsWithStrong(p) {
			addClass(p, rich.ClassSubentry)
		}
		prev := previousElement(p)
		if prev != nil && prev.DataAtom == atom.P && !startsWithStrong(prev) && Level(prev) == Level(p) {
			addClass(p, rich.ClassContinuation)
		}
	}
}

func startsWithStrong(p *html.Node) bool {
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		return c.Type == html.ElementNode && c.DataAtom == atom.Strong
	}
	return false
}

func previousElement(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
		if s.Type == html.TextNode && strings.TrimSpace(s.Data) != "" {
			return nil
		}
	}
	return nil
}

func isTab(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Span && rich.HasClass(attr(n, "class"), rich.ClassTab)
}

// elements returns the elements below n with tag a in document order.
func elements(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == a {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func element(a atom.Atom, level int) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if level > 0 {
		addClass(n, rich.ClassIndent+strconv.Itoa(level))
	}
	return n
}

func appendAll(parent *html.Node, kids []*html.Node) {
	for _, k := range kids {
		parent.AppendChild(k)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func addClass(n *html.Node, class string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			if !rich.HasClass(a.Val, class) {
				n.Attr[i].Val = rich.Classes(a.Val, class)
			}
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}
