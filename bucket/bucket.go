// Package bucket provides a probability ordered multi-map used while building Huffman trees.
// Items sharing the exact same probability are kept in a FIFO group, so that ties are resolved by insertion order.
package bucket

import (
	"math/big"

	"golang.org/x/exp/slices"
)

// group is the FIFO of items sharing one probability.
type group[T any] struct {
	prob  *big.Rat
	items []T
}

// A Bucket holds items ordered by an exact rational probability.
// The zero value is an empty bucket ready to use.
type Bucket[T any] struct {
	groups []*group[T] // ascending by prob
	n      int
}

func compare[T any](g *group[T], p *big.Rat) int {
	return g.prob.Cmp(p)
}

// Insert places item under the probability p, after any items already holding that probability.
// The bucket keeps its own copy of p.
func (b *Bucket[T]) Insert(p *big.Rat, item T) {
	i, found := slices.BinarySearchFunc(b.groups, p, compare[T])
	if !found {
		g := &group[T]{prob: new(big.Rat).Set(p)}
		b.groups = slices.Insert(b.groups, i, g)
	}
	b.groups[i].items = append(b.groups[i].items, item)
	b.n++
}

// PopLowest removes and returns the earliest inserted item of the lowest probability, together with that probability.
// When the group becomes empty the probability is removed from the bucket entirely.
// PopLowest panics if the bucket is empty.
func (b *Bucket[T]) PopLowest() (T, *big.Rat) {
	if b.n == 0 {
		panic("bucket: PopLowest on empty bucket")
	}
	g := b.groups[0]
	item := g.items[0]
	var zero T
	g.items[0] = zero
	g.items = g.items[1:]
	if len(g.items) == 0 {
		b.groups = slices.Delete(b.groups, 0, 1)
	}
	b.n--
	return item, g.prob
}

// Len returns the total number of items in the bucket.
func (b *Bucket[T]) Len() int {
	return b.n
}

// Groups returns the number of distinct probabilities in the bucket.
func (b *Bucket[T]) Groups() int {
	return len(b.groups)
}
