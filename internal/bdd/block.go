// Package bdd turns behavior-style test files into block trees.
//
// A block is a describe(...) or it(...) call with a string title and a
// callback. Blocks carry the comments written directly above the call and,
// for it blocks, the callback body.
package bdd

// BlockType distinguishes grouping blocks from statement blocks.
type BlockType string

const (
	// TypeDescribe marks a grouping block.
	TypeDescribe BlockType = "describe"
	// TypeIt marks a statement block.
	TypeIt BlockType = "it"
)

// Block is one node of a parsed BDD tree.
type Block struct {
	Type     BlockType `json:"type"`
	Contents string    `json:"contents"`
	Comments []string  `json:"comments"`
	Code     string    `json:"code,omitempty"`
	Blocks   []*Block  `json:"blocks"`
}

// IsStatement reports whether b is an it block.
func (b *Block) IsStatement() bool {
	return b.Type == TypeIt
}
