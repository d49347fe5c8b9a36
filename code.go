package huffman

import (
	"bufio"
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// A Code is the path from the root to a leaf, as a string of '0' (Right) and '1' (Left) characters.
type Code string

// Codes maps symbols to their codes.
type Codes map[byte]Code

// ReverseCodes maps codes to their symbols.
type ReverseCodes map[Code]byte

// Codes returns the code of every leaf of the tree.
// The codes are computed on the first call and shared by later calls, so callers must not modify them.
func (t *Tree) Codes() Codes {
	if t.codes != nil {
		return t.codes
	}

	type frame struct {
		id   int
		code []byte
	}
	codes := make(Codes)
	stack := []frame{{id: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[f.id]
		if n.IsLeaf() {
			codes[n.Key[0]] = Code(f.code)
			continue
		}
		// Pushed Left first so that the Right subtree is visited first.
		stack = append(stack, frame{id: n.left, code: extend(f.code, Left)})
		stack = append(stack, frame{id: n.right, code: extend(f.code, Right)})
	}

	t.codes = codes
	return codes
}

func extend(code []byte, tag ArcTag) []byte {
	c := make([]byte, len(code), len(code)+1)
	copy(c, code)
	return append(c, '0'+byte(tag))
}

// Reverse returns the inverse mapping of c.
func (c Codes) Reverse() ReverseCodes {
	rev := make(ReverseCodes, len(c))
	for sym, code := range c {
		rev[code] = sym
	}
	return rev
}

// Encode encodes every byte of src into dst, followed by the code of the Sentinel.
// The first bit of a code is the most significant bit of its output byte,
// and the last output byte is padded with zero bits.
// ErrMissingCode is returned if a byte of src, or the Sentinel, has no code in codes.
func Encode(dst io.Writer, src io.Reader, codes Codes) error {
	end, ok := codes[Sentinel]
	if !ok {
		return errors.Wrap(ErrMissingCode, "end-of-stream symbol")
	}

	bw := bufio.NewWriter(dst)
	w := bitio.NewWriter(bw)
	br := bufio.NewReader(src)
	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Cause(err) == io.EOF {
				break
			}
			return errors.Wrap(err, "")
		}
		code, ok := codes[c]
		if !ok {
			return errors.Wrapf(ErrMissingCode, "%q", c)
		}
		if err := writeCode(w, code); err != nil {
			return err
		}
	}
	if err := writeCode(w, end); err != nil {
		return err
	}

	// Close pads the partial last byte with zeros.
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func writeCode(w *bitio.Writer, code Code) error {
	for i := 0; i < len(code); i++ {
		if err := w.WriteBool(code[i] == '1'); err != nil {
			return errors.Wrap(err, "")
		}
	}
	return nil
}

// Decode decodes src into dst until the code of the Sentinel is read.
// Bits after the Sentinel are padding and are left unread.
// If src ends before the Sentinel, ErrUnexpectedEndOfInput is returned after every complete symbol has been written to dst.
func Decode(dst io.Writer, src io.Reader, rev ReverseCodes) error {
	maxLen := 0
	for code := range rev {
		if len(code) > maxLen {
			maxLen = len(code)
		}
	}

	bw := bufio.NewWriter(dst)
	r := bitio.NewReader(src)
	pending := make([]byte, 0, maxLen)
	for {
		bit, err := r.ReadBool()
		if err != nil {
			if ferr := bw.Flush(); ferr != nil {
				return errors.Wrap(ferr, "")
			}
			if errors.Cause(err) == io.EOF {
				return ErrUnexpectedEndOfInput
			}
			return errors.Wrap(err, "")
		}
		if bit {
			pending = append(pending, '1')
		} else {
			pending = append(pending, '0')
		}

		sym, ok := rev[Code(pending)]
		if !ok {
			if len(pending) >= maxLen {
				if err := bw.Flush(); err != nil {
					return errors.Wrap(err, "")
				}
				return errors.Wrapf(ErrCorruptTable, "bits %s match no code", pending)
			}
			continue
		}
		if sym == Sentinel {
			break
		}
		if err := bw.WriteByte(sym); err != nil {
			return errors.Wrap(err, "")
		}
		pending = pending[:0]
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}
