// Package stats computes the symbol statistics of a byte stream:
// occurrence counts, exact probabilities, information content and entropy.
//
// Every Table carries the end-of-stream Sentinel with a count of one,
// which is what the Huffman coder relies on to mark the logical end of an encoded stream.
package stats

import (
	"bufio"
	"io"
	"math"
	"math/big"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// Sentinel is the end-of-stream symbol (ASCII ETX).
// It is injected into every Table and must not appear in the input.
const Sentinel byte = 0x03

// ErrReservedSymbol is returned when the input contains the Sentinel.
var ErrReservedSymbol = errors.New("input contains the reserved end-of-stream symbol")

// An Entry holds the statistics of a single symbol.
type Entry struct {
	Symbol byte
	Count  int64
	Prob   *big.Rat // Count / Table.Total, exact
	Info   float64  // information content in bits, log2(1/Prob)
}

// A Table holds the statistics of every symbol of a stream, the Sentinel included.
type Table struct {
	Entries []Entry // ascending by Symbol
	Total   int64   // number of symbols, the Sentinel included
}

// Count reads r until io.EOF and returns the statistics of its bytes.
func Count(r io.Reader) (*Table, error) {
	var counts [256]int64
	br := bufio.NewReader(r)
	for offset := int64(0); ; offset++ {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Cause(err) == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "")
		}
		if c == Sentinel {
			return nil, errors.Wrapf(ErrReservedSymbol, "offset %d", offset)
		}
		counts[c]++
	}

	m := make(map[byte]int64)
	for c, n := range counts {
		if n > 0 {
			m[byte(c)] = n
		}
	}
	return FromCounts(m)
}

// CountFile returns the statistics of the file called name.
func CountFile(name string) (*Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer f.Close()
	t, err := Count(f)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return t, nil
}

// FromCounts builds a Table from raw occurrence counts.
// The Sentinel is added with a count of one, and must not be a key of counts.
func FromCounts(counts map[byte]int64) (*Table, error) {
	if _, ok := counts[Sentinel]; ok {
		return nil, ErrReservedSymbol
	}

	t := &Table{Entries: make([]Entry, 0, len(counts)+1)}
	for sym, n := range counts {
		if n <= 0 {
			return nil, errors.Errorf("non-positive count %d for symbol %q", n, sym)
		}
		t.Entries = append(t.Entries, Entry{Symbol: sym, Count: n})
		t.Total += n
	}
	t.Entries = append(t.Entries, Entry{Symbol: Sentinel, Count: 1})
	t.Total++
	sort.Slice(t.Entries, func(i, j int) bool { return t.Entries[i].Symbol < t.Entries[j].Symbol })

	for i := range t.Entries {
		e := &t.Entries[i]
		e.Prob = big.NewRat(e.Count, t.Total)
		p, _ := e.Prob.Float64()
		e.Info = -math.Log2(p)
	}
	return t, nil
}

// Lookup returns the entry of sym.
func (t *Table) Lookup(sym byte) (Entry, bool) {
	i := sort.Search(len(t.Entries), func(i int) bool { return t.Entries[i].Symbol >= sym })
	if i < len(t.Entries) && t.Entries[i].Symbol == sym {
		return t.Entries[i], true
	}
	return Entry{}, false
}

// Entropy returns the entropy of the table in bits per symbol.
func (t *Table) Entropy() float64 {
	var h float64
	for _, e := range t.Entries {
		p, _ := e.Prob.Float64()
		h += p * e.Info
	}
	return h
}
