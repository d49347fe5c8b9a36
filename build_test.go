package huffman

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/fumin/huffman/stats"
	"github.com/pkg/errors"
)

// scenarioTable returns the table {Sentinel: 0.2, 'a': 0.5, 'b': 0.3}.
func scenarioTable() *stats.Table {
	return &stats.Table{
		Entries: []stats.Entry{
			{Symbol: Sentinel, Count: 2, Prob: big.NewRat(1, 5)},
			{Symbol: 'a', Count: 5, Prob: big.NewRat(1, 2)},
			{Symbol: 'b', Count: 3, Prob: big.NewRat(3, 10)},
		},
		Total: 10,
	}
}

func TestBuildScenario(t *testing.T) {
	tree, err := Build(scenarioTable())
	if err != nil {
		t.Fatalf("%v", err)
	}

	root := tree.Root()
	if root.Tag != None {
		t.Errorf("%s", root.Tag)
	}
	if root.Key != "b\x03a" {
		t.Errorf("%q", root.Key)
	}
	if root.Prob.Cmp(big.NewRat(1, 1)) != 0 {
		t.Errorf("%s", root.Prob)
	}

	// b and the Sentinel are the lowest two, and are combined first.
	left := tree.Left(root)
	if left.Key != "b\x03" || left.Tag != Left || left.Prob.Cmp(big.NewRat(1, 2)) != 0 {
		t.Errorf("%+v", left)
	}
	if l := tree.Left(left); l.Key != "b" || l.Tag != Left {
		t.Errorf("%+v", l)
	}
	if r := tree.Right(left); r.Key != "\x03" || r.Tag != Right {
		t.Errorf("%+v", r)
	}
	// a ties with the combined node, and was popped first.
	if right := tree.Right(root); right.Key != "a" || right.Tag != Right || !right.IsLeaf() {
		t.Errorf("%+v", right)
	}

	codes := tree.Codes()
	want := Codes{'a': "0", 'b': "11", Sentinel: "10"}
	if len(codes) != len(want) {
		t.Fatalf("%v", codes)
	}
	for sym, code := range want {
		if codes[sym] != code {
			t.Errorf("%q: %s, want %s", sym, codes[sym], code)
		}
	}
}

func TestBuildTieBreak(t *testing.T) {
	table, err := stats.FromCounts(map[byte]int64{'x': 1, 'y': 1})
	if err != nil {
		t.Fatalf("%v", err)
	}
	tree, err := Build(table)
	if err != nil {
		t.Fatalf("%v", err)
	}

	// All three are 1/3, inserted as Sentinel, x, y.
	// The Sentinel is popped first and takes Right against x, then y is popped before the combined node and takes Right.
	if tree.Root().Key != "x\x03y" {
		t.Errorf("%q", tree.Root().Key)
	}
	codes := tree.Codes()
	want := Codes{'y': "0", 'x': "11", Sentinel: "10"}
	for sym, code := range want {
		if codes[sym] != code {
			t.Errorf("%q: %s, want %s", sym, codes[sym], code)
		}
	}
}

func TestBuildEqualPair(t *testing.T) {
	table := &stats.Table{
		Entries: []stats.Entry{
			{Symbol: 'x', Count: 1, Prob: big.NewRat(1, 2)},
			{Symbol: 'y', Count: 1, Prob: big.NewRat(1, 2)},
		},
		Total: 2,
	}
	tree, err := Build(table)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if tree.Root().Key != "yx" {
		t.Errorf("%q", tree.Root().Key)
	}
	codes := tree.Codes()
	if codes['x'] != "0" || codes['y'] != "1" {
		t.Errorf("%v", codes)
	}
}

func TestBuildEmpty(t *testing.T) {
	if _, err := Build(&stats.Table{}); errors.Cause(err) != ErrEmptyInput {
		t.Errorf("%v", err)
	}

	// An empty file holds only the Sentinel.
	table, err := stats.Count(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("%v", err)
	}
	if _, err := Build(table); errors.Cause(err) != ErrEmptyInput {
		t.Errorf("%v", err)
	}
}

func TestBuildSingleSymbol(t *testing.T) {
	table, err := stats.Count(strings.NewReader("aaaa"))
	if err != nil {
		t.Fatalf("%v", err)
	}
	tree, err := Build(table)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if tree.Len() != 3 {
		t.Errorf("%d", tree.Len())
	}
	codes := tree.Codes()
	if codes['a'] != "1" || codes[Sentinel] != "0" {
		t.Errorf("%v", codes)
	}
}

func TestBuildGettysburg(t *testing.T) {
	table, err := stats.CountFile("gettysburg.txt")
	if err != nil {
		t.Fatalf("%v", err)
	}
	tree, err := Build(table)
	if err != nil {
		t.Fatalf("%v", err)
	}

	// Every symbol of the table is a leaf, and nothing else is.
	syms := tree.Symbols()
	if len(syms) != len(table.Entries) {
		t.Fatalf("%d leaves, %d symbols", len(syms), len(table.Entries))
	}
	for i, e := range table.Entries {
		if syms[i] != e.Symbol {
			t.Errorf("%d: %q != %q", i, syms[i], e.Symbol)
		}
	}
	if tree.Len() != 2*len(table.Entries)-1 {
		t.Errorf("%d nodes", tree.Len())
	}
	if tree.Root().Prob.Cmp(big.NewRat(1, 1)) != 0 {
		t.Errorf("%s", tree.Root().Prob)
	}

	checkPrefixFree(t, tree.Codes())
	checkTags(t, tree)
}

func checkPrefixFree(t *testing.T, codes Codes) {
	t.Helper()
	for a, ca := range codes {
		if len(ca) == 0 {
			t.Errorf("%q has an empty code", a)
		}
		for b, cb := range codes {
			if a != b && strings.HasPrefix(string(cb), string(ca)) {
				t.Errorf("%q code %s is a prefix of %q code %s", a, ca, b, cb)
			}
		}
	}
}

// checkTags checks that only the root is tagged None, and that every Right child is not more probable than its sibling.
func checkTags(t *testing.T, tree *Tree) {
	t.Helper()
	nones := 0
	for i := range tree.nodes {
		n := &tree.nodes[i]
		if n.Tag == None {
			nones++
		}
		if n.IsLeaf() {
			continue
		}
		l, r := tree.Left(n), tree.Right(n)
		if l.Tag != Left || r.Tag != Right {
			t.Errorf("%q: children tagged %s %s", n.Key, l.Tag, r.Tag)
		}
		if l.Prob != nil && r.Prob.Cmp(l.Prob) > 0 {
			t.Errorf("%q: right %s > left %s", n.Key, r.Prob, l.Prob)
		}
		if n.Key != l.Key+r.Key {
			t.Errorf("%q != %q + %q", n.Key, l.Key, r.Key)
		}
	}
	if nones != 1 || tree.Root().Tag != None {
		t.Errorf("%d nodes tagged None", nones)
	}
}
