// Package huffman provides a Huffman coder whose code tree is persisted next to the encoded data.
// It builds a prefix-free code from the symbol probabilities of a file, serializes the code tree in a compact
// text form, and packs the file into bits terminated by an end-of-stream sentinel symbol.
//
// Below is an example of compressing Lincoln's Gettysburg address and restoring it:
//    go run compress/main.go gettysburg.txt       # writes gettysburg.txt.htable and gettysburg.txt.hencoded
//    go run decompress/main.go gettysburg.txt.hencoded  # writes gettysburg.txt.hdecoded
//    diff gettysburg.txt gettysburg.txt.hdecoded
package huffman

import (
	"math/big"
	"strconv"

	"github.com/fumin/huffman/stats"
	"github.com/pkg/errors"
)

// Sentinel is the symbol that marks the logical end of an encoded stream.
const Sentinel = stats.Sentinel

var (
	// ErrEmptyInput is returned when there are too few symbols to build a tree from.
	ErrEmptyInput = errors.New("not enough symbols to build a tree")

	// ErrCorruptTable is returned when a serialized tree violates the structure of a code tree.
	ErrCorruptTable = errors.New("corrupt tree table")

	// ErrMissingCode is returned when a symbol to be encoded has no code in the tree.
	ErrMissingCode = errors.New("symbol has no code")

	// ErrUnexpectedEndOfInput is returned when the encoded stream ends before the sentinel.
	// Everything decoded up to that point has already been written, so callers may treat it as a warning.
	ErrUnexpectedEndOfInput = errors.New("encoded stream ended before the end-of-stream symbol")

	// ErrUnsupportedSymbol is returned when serializing a tree with a symbol that collides with the control bytes.
	ErrUnsupportedSymbol = errors.New("symbol collides with a tree table control byte")
)

// An ArcTag marks which side of its parent a node hangs on.
type ArcTag int8

const (
	// Right marks the child of lower or equal probability, and is coded as a 0 bit.
	Right ArcTag = 0
	// Left marks the other child, and is coded as a 1 bit.
	Left ArcTag = 1
	// None marks the root.
	None ArcTag = -1
)

func (a ArcTag) String() string {
	switch a {
	case Right:
		return "RIGHT"
	case Left:
		return "LEFT"
	case None:
		return "NONE"
	}
	return "ArcTag(" + strconv.Itoa(int(a)) + ")"
}

// noChild is the child index of a leaf.
const noChild = -1

// A Node is a group of symbols in a Tree.
// A leaf holds a single symbol, an internal node holds the symbols of its descendants,
// the left child's symbols followed by the right child's.
type Node struct {
	Key  string
	Prob *big.Rat // nil for deserialized trees
	Tag  ArcTag

	left  int
	right int
}

// IsLeaf reports whether the node holds a single symbol.
func (n *Node) IsLeaf() bool {
	return n.left == noChild && n.right == noChild
}

// A Tree is a strict binary code tree, stored as an arena of nodes referenced by index.
type Tree struct {
	nodes []Node
	root  int

	codes Codes
}

func (t *Tree) add(n Node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *Tree) addLeaf(key string, prob *big.Rat, tag ArcTag) int {
	return t.add(Node{Key: key, Prob: prob, Tag: tag, left: noChild, right: noChild})
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return &t.nodes[t.root]
}

// Left returns the left child of n, or nil if n is a leaf.
func (t *Tree) Left(n *Node) *Node {
	if n.left == noChild {
		return nil
	}
	return &t.nodes[n.left]
}

// Right returns the right child of n, or nil if n is a leaf.
func (t *Tree) Right(n *Node) *Node {
	if n.right == noChild {
		return nil
	}
	return &t.nodes[n.right]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Symbols returns the symbols of the leaves of the tree in ascending order.
func (t *Tree) Symbols() []byte {
	var present [256]bool
	for i := range t.nodes {
		if t.nodes[i].IsLeaf() {
			present[t.nodes[i].Key[0]] = true
		}
	}
	syms := make([]byte, 0, len(t.nodes)/2+1)
	for c, ok := range present {
		if ok {
			syms = append(syms, byte(c))
		}
	}
	return syms
}
