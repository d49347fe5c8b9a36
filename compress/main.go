package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fumin/huffman"
	"github.com/fumin/huffman/stats"
	"github.com/pkg/errors"
)

var (
	tablePath   = flag.String("table", "", "tree table output, default <filename>.htable")
	encodedPath = flag.String("o", "", "encoded output, default <filename>.hencoded")
	verbose     = flag.Bool("verbose", false, "print the symbol statistics")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] filename\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	name := flag.Arg(0)
	if name == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *tablePath == "" {
		*tablePath = huffman.TablePath(name)
	}
	if *encodedPath == "" {
		*encodedPath = huffman.EncodedPath(name)
	}

	if *verbose {
		if err := printStats(name); err != nil {
			log.Fatalf("%+v", err)
		}
	}
	if err := huffman.CompressFileTo(name, *tablePath, *encodedPath); err != nil {
		log.Fatalf("%+v", err)
	}
	log.Printf("%s -> %s %s", name, *tablePath, *encodedPath)
}

func printStats(name string) error {
	table, err := stats.CountFile(name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	log.Printf("symbols: %d, total: %d", len(table.Entries), table.Total)
	for _, e := range table.Entries {
		sym := fmt.Sprintf("%q", e.Symbol)
		log.Printf("%6s: o=%7d p=%12s i=%f", sym, e.Count, e.Prob.FloatString(10), e.Info)
	}
	log.Printf("entropy: %f", table.Entropy())
	return nil
}
