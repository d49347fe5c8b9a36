package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fumin/huffman"
	"github.com/pkg/errors"
)

var (
	tablePath   = flag.String("table", "", "tree table input, default derived from the encoded filename")
	decodedPath = flag.String("o", "", "decoded output, default derived from the encoded filename")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] filename.hencoded\n", os.Args[0])
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
	if *decodedPath == "" {
		*decodedPath = huffman.DecodedPath(name)
	}

	err := huffman.DecompressFileTo(*decodedPath, name, *tablePath)
	if errors.Cause(err) == huffman.ErrUnexpectedEndOfInput {
		log.Printf("%s: %v, decoding may be incomplete", name, err)
	} else if err != nil {
		log.Fatalf("%+v", err)
	}
	log.Printf("%s -> %s", name, *decodedPath)
}
