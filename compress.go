package huffman

import (
	"io"
	"os"
	"strings"

	"github.com/fumin/huffman/stats"
	"github.com/pkg/errors"
)

const (
	tableExt   = ".htable"
	encodedExt = ".hencoded"
	decodedExt = ".hdecoded"
)

// Compress builds the code tree of the file called name, writes the tree into table and the encoded file into encoded.
func Compress(table, encoded io.Writer, name string) error {
	st, err := stats.CountFile(name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	t, err := Build(st)
	if err != nil {
		return errors.Wrap(err, name)
	}
	if _, err := t.WriteTo(table); err != nil {
		return errors.Wrap(err, "")
	}

	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()
	if err := Encode(encoded, f, t.Codes()); err != nil {
		return errors.Wrap(err, name)
	}
	return nil
}

// Decompress decodes encoded into dst, using the tree serialized in table.
// As with Decode, ErrUnexpectedEndOfInput means dst holds everything that could be decoded.
func Decompress(dst io.Writer, encoded, table io.Reader) error {
	t, err := ReadTree(table)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if err := Decode(dst, encoded, t.Codes().Reverse()); err != nil {
		if errors.Cause(err) == ErrUnexpectedEndOfInput {
			return err
		}
		return errors.Wrap(err, "")
	}
	return nil
}

// TablePath returns the path of the tree table of the file called name.
// name may be either the original file or its encoded file.
func TablePath(name string) string {
	return strings.TrimSuffix(name, encodedExt) + tableExt
}

// EncodedPath returns the path of the encoded file of the file called name.
func EncodedPath(name string) string {
	return name + encodedExt
}

// DecodedPath returns the path of the decoded file of the file called name.
// name may be either the original file or its encoded file.
func DecodedPath(name string) string {
	return strings.TrimSuffix(name, encodedExt) + decodedExt
}

// CompressFile compresses the file called name into TablePath(name) and EncodedPath(name).
func CompressFile(name string) error {
	return CompressFileTo(name, TablePath(name), EncodedPath(name))
}

// CompressFileTo compresses the file called name into the files tablePath and encodedPath.
func CompressFileTo(name, tablePath, encodedPath string) error {
	table, err := os.Create(tablePath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer table.Close()
	encoded, err := os.Create(encodedPath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer encoded.Close()

	if err := Compress(table, encoded, name); err != nil {
		return errors.Wrap(err, "")
	}
	if err := table.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	if err := encoded.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// DecompressFile decodes the encoded file called name into DecodedPath(name), reading the tree from TablePath(name).
func DecompressFile(name string) error {
	encodedPath := name
	if !strings.HasSuffix(name, encodedExt) {
		encodedPath = EncodedPath(name)
	}
	return DecompressFileTo(DecodedPath(name), encodedPath, TablePath(name))
}

// DecompressFileTo decodes the file encodedPath into the file dstPath, reading the tree from the file tablePath.
// ErrUnexpectedEndOfInput is returned unwrapped, after dstPath is complete with whatever could be decoded.
func DecompressFileTo(dstPath, encodedPath, tablePath string) error {
	table, err := os.Open(tablePath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer table.Close()
	encoded, err := os.Open(encodedPath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer encoded.Close()
	dst, err := os.Create(dstPath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer dst.Close()

	derr := Decompress(dst, encoded, table)
	if derr != nil && errors.Cause(derr) != ErrUnexpectedEndOfInput {
		return errors.Wrap(derr, encodedPath)
	}
	if err := dst.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	return derr
}
