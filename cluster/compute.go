// Command cluster prints the normalized compression distance between every pair of files in a directory,
// using the Huffman coded size of a file as an estimate of its complexity.
package main

import (
	"bytes"
	"compress/gzip"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fumin/huffman"
	"github.com/pkg/errors"
)

var (
	estimatorType = flag.String("i", "huffman", "complexity estimator, huffman or gzip")
	dataDir       = flag.String("d", "mammals10", "data directory")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	if err := run(*estimatorType, *dataDir); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(estimator, dir string) error {
	data, err := listFiles(dir)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if len(data) < 2 {
		return errors.Errorf("%s: need at least two files, got %d", dir, len(data))
	}
	e, err := newEstimator(estimator)
	if err != nil {
		return errors.Wrap(err, "")
	}
	distMat, err := distanceMatrix(e, data)
	if err != nil {
		return errors.Wrap(err, "")
	}
	display(data, distMat)
	return nil
}

// display prints the file names and the condensed distance matrix as comma separated arrays.
func display(data []string, distMat []float64) {
	names := make([]string, 0, len(data))
	for _, fpath := range data {
		name := filepath.Base(fpath)
		names = append(names, strconv.Quote(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	log.Printf("[%s]", strings.Join(names, ","))

	dists := make([]string, 0, len(distMat))
	for _, f := range distMat {
		dists = append(dists, strconv.FormatFloat(f, 'f', -1, 64))
	}
	log.Printf("[%s]", strings.Join(dists, ","))
}

// An estimator measures the complexity of files by their compressed size.
type estimator struct {
	compress func(w io.Writer, fpath string) error
	sizes    map[string]float64
}

func newEstimator(kind string) (*estimator, error) {
	e := &estimator{sizes: make(map[string]float64)}
	switch kind {
	case "huffman":
		e.compress = compressHuffman
	case "gzip":
		e.compress = compressGzip
	default:
		return nil, errors.Errorf("unknown estimator %q", kind)
	}
	return e, nil
}

func (e *estimator) complexity(fpath string) (float64, error) {
	if size, ok := e.sizes[fpath]; ok {
		return size, nil
	}
	cw := &countWriter{}
	if err := e.compress(cw, fpath); err != nil {
		return -1, errors.Wrap(err, fpath)
	}
	e.sizes[fpath] = float64(cw.n)
	return float64(cw.n), nil
}

// distance returns the normalized compression distance of x and y.
func (e *estimator) distance(x, y string) (float64, error) {
	xy, err := os.CreateTemp("", filepath.Base(x)+filepath.Base(y))
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	defer os.Remove(xy.Name())
	if err := concatFiles(xy, x, y); err != nil {
		return -1, errors.Wrap(err, "")
	}

	kxy, err := e.complexity(xy.Name())
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	delete(e.sizes, xy.Name())
	kx, err := e.complexity(x)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	ky, err := e.complexity(y)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}

	minxy, maxxy := kx, ky
	if ky < kx {
		minxy, maxxy = ky, kx
	}
	return (kxy - minxy) / maxxy, nil
}

// compressHuffman writes both the tree table and the encoded file of fpath into w.
func compressHuffman(w io.Writer, fpath string) error {
	encoded := bytes.NewBuffer(nil)
	if err := huffman.Compress(w, encoded, fpath); err != nil {
		return errors.Wrap(err, "")
	}
	if _, err := encoded.WriteTo(w); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func compressGzip(w io.Writer, fpath string) error {
	f, err := os.Open(fpath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()
	zw := gzip.NewWriter(w)
	if _, err := io.Copy(zw, f); err != nil {
		return errors.Wrap(err, "")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

type countWriter struct {
	n int64
}

func (w *countWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

func concatFiles(tmpf *os.File, fs ...string) error {
	for _, fpath := range fs {
		err := func(fpath string) error {
			f, err := os.Open(fpath)
			if err != nil {
				return errors.Wrap(err, "")
			}
			defer f.Close()
			if _, err := io.Copy(tmpf, f); err != nil {
				return errors.Wrap(err, "")
			}
			return nil
		}(fpath)
		if err != nil {
			return errors.Wrap(err, "")
		}
	}
	if err := tmpf.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func distanceMatrix(e *estimator, data []string) ([]float64, error) {
	n := len(data)
	mat := make([]float64, 0, n*(n-1)/2)
	for i, dx := range data[:n-1] {
		for _, dy := range data[i+1:] {
			dist, err := e.distance(dx, dy)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			mat = append(mat, dist)
			log.Printf("\"%s\"-\"%s\": %f", dx, dy, dist)
		}
	}
	return mat, nil
}

func listFiles(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	data := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data = append(data, filepath.Join(dir, f.Name()))
	}
	return data, nil
}
