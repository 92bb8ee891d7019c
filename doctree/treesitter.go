package doctree

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
)

const (
	tsFencedCodeBlock  = "fenced_code_block"
	tsFenceDelimiter   = "fenced_code_block_delimiter"
	tsCodeFenceContent = "code_fence_content"
)

// ParseMarkdown parses src with tree-sitter and reports its fenced code
// blocks the way an editor host does: a begin token over the opening
// line, a code line token per non-blank content line and an end token
// over the closing line. Blank content lines produce no token.
func ParseMarkdown(ctx context.Context, src []byte) (Doc, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tree_sitter_markdown.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return Doc{}, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return Doc{}, fmt.Errorf("markdown parse canceled: %w", err)
	}

	var tokens []Token
	collectFences(tree.RootNode(), src, &tokens)
	return Doc{Source: string(src), Root: Build(tokens)}, nil
}

func collectFences(n *sitter.Node, src []byte, tokens *[]Token) {
	if n == nil {
		return
	}
	if n.Type() == tsFencedCodeBlock {
		fenceTokens(n, src, tokens)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectFences(n.Child(i), src, tokens)
	}
}

func fenceTokens(n *sitter.Node, src []byte, tokens *[]Token) {
	delims := 0
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case tsFenceDelimiter:
			from := int(c.StartByte())
			name := HostFenceBegin
			if delims > 0 {
				name = HostFenceEnd
			}
			delims++
			*tokens = append(*tokens, Token{Name: name, From: from, To: lineEnd(src, from)})
		case tsCodeFenceContent:
			contentLines(src, int(c.StartByte()), int(c.EndByte()), tokens)
		}
	}
}

func contentLines(src []byte, from, to int, tokens *[]Token) {
	for from < to {
		end := lineEnd(src, from)
		if end > to {
			end = to
		}
		if strings.TrimSpace(string(src[from:end])) != "" {
			*tokens = append(*tokens, Token{Name: HostCodeLine, From: from, To: end})
		}
		from = end + 1
	}
}

// lineEnd returns the offset of the newline ending the line holding i,
// or len(src).
func lineEnd(src []byte, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}
