package huffman

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// WriteTo serializes the tree into w.
//
// Nodes are written children first, the Right subtree before the Left one.
// Each node is written as its key followed by a control byte holding its tag, 0 for Right and 1 for Left.
// The root comes last, as its key alone.
// Symbols 0 and 1 cannot be represented, and make WriteTo fail with ErrUnsupportedSymbol.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 4*len(t.nodes)))

	// Reverse of the emission order: node, then its Left subtree, then its Right subtree.
	order := make([]int, 0, len(t.nodes))
	stack := []int{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, id)

		n := &t.nodes[id]
		if n.IsLeaf() {
			continue
		}
		stack = append(stack, n.right, n.left)
	}

	for i := len(order) - 1; i >= 0; i-- {
		n := &t.nodes[order[i]]
		if n.IsLeaf() && isControl(n.Key[0]) {
			return 0, errors.Wrapf(ErrUnsupportedSymbol, "%#x", n.Key[0])
		}
		buf.WriteString(n.Key)
		if n.Tag != None {
			buf.WriteByte(byte(n.Tag))
		}
	}

	written, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(written), errors.Wrap(err, "")
	}
	return int64(written), nil
}

func isControl(c byte) bool {
	return c == byte(Right) || c == byte(Left)
}

// ReadTree deserializes a tree written by Tree.WriteTo.
// Node probabilities are not part of the serialized form and are nil in the returned tree.
func ReadTree(r io.Reader) (*Tree, error) {
	t := &Tree{}
	d := &treeDecoder{
		t:      t,
		lefts:  make(map[string]int),
		rights: make(map[string]int),
	}

	br := bufio.NewReader(r)
	var pending []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Cause(err) == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "")
		}
		if !isControl(c) {
			pending = append(pending, c)
			continue
		}

		if err := d.candidate(string(pending), ArcTag(c)); err != nil {
			return nil, err
		}
		pending = pending[:0]
	}

	if len(pending) == 0 {
		return nil, errors.Wrap(ErrCorruptTable, "missing root")
	}
	if len(d.lefts) != 1 || len(d.rights) != 1 {
		return nil, errors.Wrapf(ErrCorruptTable, "%d left and %d right candidates for the root", len(d.lefts), len(d.rights))
	}
	root, err := d.resolve(string(pending))
	if err != nil {
		return nil, err
	}
	if t.nodes[root].IsLeaf() {
		return nil, errors.Wrapf(ErrCorruptTable, "root %q does not join the remaining candidates", pending)
	}
	t.root = root
	t.nodes[root].Tag = None
	return t, nil
}

// A treeDecoder holds the nodes that were read but are not yet attached to a parent.
type treeDecoder struct {
	t      *Tree
	lefts  map[string]int
	rights map[string]int
	seen   [256]bool // symbols already read as leaves
}

// candidate finalizes the node key tagged with tag.
func (d *treeDecoder) candidate(key string, tag ArcTag) error {
	if len(key) == 0 {
		return errors.Wrap(ErrCorruptTable, "empty key")
	}
	id, err := d.resolve(key)
	if err != nil {
		return err
	}
	d.t.nodes[id].Tag = tag

	m := d.rights
	if tag == Left {
		m = d.lefts
	}
	if _, ok := m[key]; ok {
		return errors.Wrapf(ErrCorruptTable, "duplicate key %q", key)
	}
	m[key] = id
	return nil
}

// resolve adds the node of key to the tree.
// A single symbol is a leaf, and may appear only once in the tree.
// Any longer key must split into a known Left prefix followed by a known Right suffix, which become its children.
func (d *treeDecoder) resolve(key string) (int, error) {
	if len(key) == 1 {
		if d.seen[key[0]] {
			return 0, errors.Wrapf(ErrCorruptTable, "symbol %q appears twice", key)
		}
		d.seen[key[0]] = true
		return d.t.addLeaf(key, nil, Right), nil
	}

	for i := 1; i < len(key); i++ {
		left, ok := d.lefts[key[:i]]
		if !ok {
			continue
		}
		right, ok := d.rights[key[i:]]
		if !ok {
			continue
		}
		delete(d.lefts, key[:i])
		delete(d.rights, key[i:])
		return d.t.join(left, right), nil
	}
	return 0, errors.Wrapf(ErrCorruptTable, "key %q matches no pair of children", key)
}
