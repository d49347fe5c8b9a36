package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDistance(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.txt": strings.Repeat("the quick brown fox jumps over the lazy dog ", 40),
		"b.txt": strings.Repeat("the quick brown fox jumps over the lazy cat ", 40),
		"c.txt": strings.Repeat("0123456789+-*/=<>[](){}", 80),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("%v", err)
		}
	}
	data, err := listFiles(dir)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if len(data) != 3 {
		t.Fatalf("%v", data)
	}

	for _, kind := range []string{"huffman", "gzip"} {
		e, err := newEstimator(kind)
		if err != nil {
			t.Fatalf("%v", err)
		}
		ab, err := e.distance(filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))
		if err != nil {
			t.Fatalf("%v", err)
		}
		ac, err := e.distance(filepath.Join(dir, "a.txt"), filepath.Join(dir, "c.txt"))
		if err != nil {
			t.Fatalf("%v", err)
		}
		if ab >= ac {
			t.Errorf("%s: similar files %f, different files %f", kind, ab, ac)
		}
	}

	if _, err := newEstimator("ctw"); err == nil {
		t.Errorf("expected error")
	}
}
