package cyk

import (
	"fmt"
	"strings"

	"github.com/dekarrin/codex/internal/grammar"
)

const (
	treeLevelEmpty      = "        "
	treeLevelOngoing    = "  |     "
	treeLevelPrefix     = "  |---: "
	treeLevelPrefixLast = `  \---: `
)

// Node is a node of a parse tree. A Node has either no children or exactly
// two. Rule is nil for leaves.
type Node struct {
	Symbol   grammar.Symbol
	Children []*Node
	Rule     *grammar.Production
}

// IsLeaf returns whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// AppliedRule gives the rule used to expand the node. It returns false for
// leaves.
func (n *Node) AppliedRule() (grammar.Rule, bool) {
	if n.Rule == nil {
		return grammar.Rule{}, false
	}
	return grammar.Rule{LHS: n.Symbol, RHS: *n.Rule}, true
}

// Leaves returns the symbols at the leaves of the tree rooted at n, from left
// to right.
func (n *Node) Leaves() []grammar.Symbol {
	if n.IsLeaf() {
		return []grammar.Symbol{n.Symbol}
	}

	var leaves []grammar.Symbol
	for _, child := range n.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}

// String returns a prettified representation of the entire parse tree
// suitable for use in line-by-line comparisons of tree structure.
func (n *Node) String() string {
	return n.leveledStr("", "")
}

func (n *Node) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder

	sb.WriteString(firstPrefix)
	sb.WriteString(fmt.Sprintf("( %s )", n.Symbol))

	for i := range n.Children {
		sb.WriteRune('\n')
		var leveledFirstPrefix string
		var leveledContPrefix string
		if i+1 < len(n.Children) {
			leveledFirstPrefix = contPrefix + treeLevelPrefix
			leveledContPrefix = contPrefix + treeLevelOngoing
		} else {
			leveledFirstPrefix = contPrefix + treeLevelPrefixLast
			leveledContPrefix = contPrefix + treeLevelEmpty
		}
		sb.WriteString(n.Children[i].leveledStr(leveledFirstPrefix, leveledContPrefix))
	}

	return sb.String()
}

// ReconstructParseTree builds the parse tree for the full span of a table
// returned by Parse, rooted at start. At every cell the first recorded
// backpointer is followed; other parses of ambiguous inputs are not explored.
//
// It returns (nil, false) if start does not cover the first n tokens in the
// table.
func ReconstructParseTree(table Table, start grammar.Symbol, n int) (*Node, bool) {
	if n < 1 || n > table.Len() || len(table.Cell(0, n, start)) == 0 {
		return nil, false
	}

	return buildTree(table, start, 0, n)
}

func buildTree(table Table, sym grammar.Symbol, start, length int) (*Node, bool) {
	bps := table.Cell(start, length, sym)
	if len(bps) == 0 {
		return nil, false
	}

	node := &Node{Symbol: sym}

	bp := bps[0]
	if bp == nil {
		return node, true
	}

	left, ok := buildTree(table, bp.RHS[0], start, bp.Split)
	if !ok {
		return nil, false
	}
	right, ok := buildTree(table, bp.RHS[1], start+bp.Split, length-bp.Split)
	if !ok {
		return nil, false
	}

	rhs := bp.RHS
	node.Children = []*Node{left, right}
	node.Rule = &rhs
	return node, true
}
