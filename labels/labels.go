// Package labels renames the sample columns of an expression matrix from an
// externally supplied, positionally ordered label table (e.g. sampling times).
package labels

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/carbocation/orthoexpr/exprmatrix"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

var ErrCardinality = errors.New("label count does not match sample count")

// CardinalityError reports a label table that cannot be aligned with the
// samples of a matrix.
type CardinalityError struct {
	Labels  int
	Samples int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("%s: %d labels for %d samples", ErrCardinality, e.Labels, e.Samples)
}

func (e *CardinalityError) Unwrap() error {
	return ErrCardinality
}

// Label is one row of a label table. Key is positional bookkeeping only and
// is never consulted.
type Label struct {
	Key   string `csv:"key"`
	Label string `csv:"label"`
}

// Read parses a label table. The first record is a header and is discarded;
// of the remaining records, column 0 is the key and column 1 the label.
// Further columns are ignored.
func Read(rdr *csv.Reader) ([]*Label, error) {
	records, err := rdr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := []*Label{}
	if len(records) < 2 {
		return out, nil
	}

	// Header is dropped; rows are cut to the two decoded columns.
	rows := make([][]string, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 2 {
			return nil, pfx.Err(fmt.Errorf("line %d has %d fields; expected at least 2 (key, label)", i+2, len(rec)))
		}
		rows = append(rows, rec[:2])
	}

	if err := gocsv.UnmarshalCSVWithoutHeaders(&recordReader{records: rows}, &out); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// Strings returns the labels in order.
func Strings(ls []*Label) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Label)
	}

	return out
}

// Apply returns a copy of m whose samples are renamed, in order, to names.
// Nothing is checked about the names themselves.
func Apply(m *exprmatrix.Matrix, names []string) (*exprmatrix.Matrix, error) {
	if len(names) != m.NumCols() {
		return nil, &CardinalityError{Labels: len(names), Samples: m.NumCols()}
	}

	out := m.Clone()
	copy(out.Samples, names)

	return out, nil
}

// recordReader serves already-parsed records through gocsv.CSVReader.
type recordReader struct {
	records [][]string
	pos     int
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++

	return rec, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)

	return rest, nil
}
