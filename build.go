package huffman

import (
	"math/big"

	"github.com/fumin/huffman/bucket"
	"github.com/fumin/huffman/stats"
	"github.com/pkg/errors"
)

// Build builds the code tree of table.
// Leaves are inserted in the order of table.Entries, which decides the order equal probabilities are combined in.
// At every combination the node of lower or equal probability becomes the Right child,
// and on equality the node popped first is the lower one.
func Build(table *stats.Table) (*Tree, error) {
	if len(table.Entries) < 2 {
		return nil, errors.Wrapf(ErrEmptyInput, "%d symbols", len(table.Entries))
	}

	t := &Tree{nodes: make([]Node, 0, 2*len(table.Entries)-1)}
	b := &bucket.Bucket[int]{}
	for _, e := range table.Entries {
		id := t.addLeaf(string([]byte{e.Symbol}), e.Prob, Right)
		b.Insert(e.Prob, id)
	}

	for b.Len() > 1 {
		a := t.popLowest(b, Right)
		c := t.popLowest(b, Right)

		left, right := c, a
		if t.nodes[a].Prob.Cmp(t.nodes[c].Prob) > 0 {
			left, right = a, c
		}
		t.nodes[left].Tag = Left
		t.nodes[right].Tag = Right

		parent := t.join(left, right)
		b.Insert(t.nodes[parent].Prob, parent)
	}

	t.root, _ = b.PopLowest()
	t.nodes[t.root].Tag = None
	return t, nil
}

// popLowest pops the lowest probability node of b and stamps it with tag.
func (t *Tree) popLowest(b *bucket.Bucket[int], tag ArcTag) int {
	id, _ := b.PopLowest()
	t.nodes[id].Tag = tag
	return id
}

// join adds the parent of left and right.
func (t *Tree) join(left, right int) int {
	l, r := &t.nodes[left], &t.nodes[right]
	n := Node{Key: l.Key + r.Key, left: left, right: right, Tag: Right}
	if l.Prob != nil && r.Prob != nil {
		n.Prob = new(big.Rat).Add(l.Prob, r.Prob)
	}
	return t.add(n)
}
