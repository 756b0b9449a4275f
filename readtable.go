package orthoexpr

import (
	"bytes"
	"encoding/csv"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// ReadTable loads the whole (possibly compressed, possibly gs://) file at path
// into memory and returns a csv.Reader over it. If delim is zero, the
// delimiter is sniffed from the contents.
func ReadTable(path string, client *storage.Client, delim rune) (*csv.Reader, error) {
	f, err := MaybeOpenSeekerFromGoogleStorage(path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	r, err := MaybeDecompressReadCloser(f)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer r.Close()

	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return NewTableReader(contents, delim), nil
}

// NewTableReader wraps already-loaded table contents. If delim is zero, the
// delimiter is sniffed from the contents.
func NewTableReader(contents []byte, delim rune) *csv.Reader {
	if delim == 0 {
		delim = DetermineDelimiter(bytes.NewReader(contents))
	}

	rdr := csv.NewReader(bytes.NewReader(contents))
	rdr.Comma = delim
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true

	return rdr
}
