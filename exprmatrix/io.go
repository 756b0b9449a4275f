package exprmatrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/orthoexpr"
	"github.com/carbocation/pfx"
)

// ParseValue parses one expression cell. Missing tokens become NaN.
func ParseValue(cell string) (float64, error) {
	if orthoexpr.IsMissing(cell) {
		return math.NaN(), nil
	}

	return strconv.ParseFloat(strings.TrimSpace(cell), 64)
}

// FormatValue renders a value in shortest round-trip form; NaN is written as
// an empty cell.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Read parses a matrix whose header row holds the index name followed by the
// sample identifiers, and whose data rows hold a gene identifier followed by
// one value per sample. A header with one field fewer than the data rows
// (as written by R) names only the samples; the index name is then empty.
func Read(rdr *csv.Reader) (*Matrix, error) {
	header, err := rdr.Read()
	if err == io.EOF {
		return nil, pfx.Err(fmt.Errorf("expression matrix is empty"))
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	if len(header) < 1 {
		return nil, pfx.Err(fmt.Errorf("expression matrix header has no columns"))
	}

	samples := make([]string, 0, len(header)-1)
	for _, v := range header[1:] {
		samples = append(samples, strings.TrimSpace(v))
	}

	// Spreadsheet exports may lead with a byte order mark
	m := New(strings.TrimSpace(strings.TrimPrefix(header[0], "\ufeff")), samples)

	width := len(header)
	line := 1
	for {
		rec, err := rdr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}
		line++

		// Tolerate blank trailing lines
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		// The first data row decides whether the header names the index column
		if m.NumRows() == 0 && width == len(header) && len(rec) == len(header)+1 {
			unnamed := make([]string, 0, len(header))
			for _, v := range header {
				unnamed = append(unnamed, strings.TrimSpace(strings.TrimPrefix(v, "\ufeff")))
			}
			m = New("", unnamed)
			width = len(rec)
		}

		if len(rec) != width {
			return nil, pfx.Err(fmt.Errorf("line %d has %d fields, but the header has %d", line, len(rec), width))
		}

		values := make([]float64, m.NumCols())
		for j, cell := range rec[1:] {
			v, err := ParseValue(cell)
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("line %d, sample %s: %w", line, m.Samples[j], err))
			}
			values[j] = v
		}

		m.Genes = append(m.Genes, strings.TrimSpace(rec[0]))
		m.Values = append(m.Values, values)
	}

	return m, nil
}

// Write emits the matrix as comma-delimited text with a header row.
func Write(w io.Writer, m *Matrix) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(m.Samples)+1)
	header = append(header, m.IndexName)
	header = append(header, m.Samples...)
	if err := cw.Write(header); err != nil {
		return pfx.Err(err)
	}

	row := make([]string, len(m.Samples)+1)
	for i, gene := range m.Genes {
		row[0] = gene
		for j, v := range m.Values[i] {
			row[j+1] = FormatValue(v)
		}
		if err := cw.Write(row); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
