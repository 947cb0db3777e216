package bdd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// ErrSyntax is returned when the source is not valid JavaScript.
var ErrSyntax = errors.New("syntax error")

// Parse tokenizes JavaScript test source into its top-level blocks.
func Parse(ctx context.Context, src []byte) ([]*Block, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%w: empty syntax tree", ErrSyntax)
	}
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			return nil, fmt.Errorf("%w: line %d", ErrSyntax, bad.StartPoint().Row+1)
		}
		return nil, ErrSyntax
	}

	return collectBlocks(root, src), nil
}

// collectBlocks returns the blocks declared directly in a program or
// statement block, in source order.
func collectBlocks(parent *sitter.Node, src []byte) []*Block {
	blocks := []*Block{}
	var (
		comments []string
		prev     *sitter.Node
	)
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		child := parent.NamedChild(i)
		if child.Type() == "comment" {
			// a comment on the same line as the previous statement trails it
			if prev != nil && child.StartPoint().Row == prev.EndPoint().Row {
				continue
			}
			comments = append(comments, commentText(child.Content(src)))
			continue
		}
		if b := parseBlock(child, src); b != nil {
			if comments != nil {
				b.Comments = comments
			}
			blocks = append(blocks, b)
		}
		comments = nil
		prev = child
	}
	return blocks
}

// parseBlock converts an expression statement of the form
// describe("title", function () { ... }) into a Block.
func parseBlock(stmt *sitter.Node, src []byte) *Block {
	if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
		return nil
	}
	call := stmt.NamedChild(0)
	if call.Type() != "call_expression" {
		return nil
	}
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" {
		return nil
	}

	var blockType BlockType
	switch fn.Content(src) {
	case string(TypeDescribe):
		blockType = TypeDescribe
	case string(TypeIt):
		blockType = TypeIt
	default:
		return nil
	}

	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() < 2 {
		return nil
	}
	title, ok := stringLiteral(args.NamedChild(0), src)
	if !ok {
		return nil
	}
	callback := args.NamedChild(1)
	if callback.Type() != "function_expression" && callback.Type() != "function" && callback.Type() != "arrow_function" {
		return nil
	}

	block := &Block{
		Type:     blockType,
		Contents: title,
		Comments: []string{},
		Blocks:   []*Block{},
	}

	body := callback.ChildByFieldName("body")
	if body == nil {
		return block
	}
	if body.Type() == "statement_block" {
		block.Blocks = collectBlocks(body, src)
		if blockType == TypeIt {
			inner := src[body.StartByte()+1 : body.EndByte()-1]
			block.Code = dedent(string(inner))
		}
	} else if blockType == TypeIt {
		block.Code = dedent(body.Content(src))
	}
	return block
}

func stringLiteral(n *sitter.Node, src []byte) (string, bool) {
	switch n.Type() {
	case "string", "template_string":
		raw := n.Content(src)
		if len(raw) < 2 {
			return "", false
		}
		return unescape(raw[1 : len(raw)-1]), true
	}
	return "", false
}

// commentText strips the comment markers and keeps the inner text as is.
func commentText(raw string) string {
	if strings.HasPrefix(raw, "//") {
		return strings.TrimPrefix(raw, "//")
	}
	raw = strings.TrimPrefix(raw, "/*")
	return strings.TrimSuffix(raw, "*/")
}

// dedent drops leading blank lines and trailing whitespace, then removes
// the indentation shared by all non-blank lines.
func dedent(body string) string {
	lines := strings.Split(strings.TrimRight(body, " \t\r\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return ""
	}

	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent == -1 || n < indent {
			indent = n
		}
	}
	for i, l := range lines {
		l = strings.TrimRight(l, "\r")
		if len(l) >= indent {
			lines[i] = l[indent:]
		} else {
			lines[i] = strings.TrimLeft(l, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
