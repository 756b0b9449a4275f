// Package exprmatrix holds a gene-by-sample expression matrix together with
// its delimited-text reader and writer.
package exprmatrix

import (
	"fmt"
	"math"
)

// Matrix is a dense expression matrix. Rows are genes, columns are samples.
// Genes may repeat; missing values are NaN.
type Matrix struct {
	// IndexName is the header of the gene identifier column.
	IndexName string
	Samples   []string
	Genes     []string
	Values    [][]float64
}

// New returns an empty matrix with the given columns.
func New(indexName string, samples []string) *Matrix {
	return &Matrix{
		IndexName: indexName,
		Samples:   append([]string(nil), samples...),
		Genes:     make([]string, 0),
		Values:    make([][]float64, 0),
	}
}

// NumRows returns the number of genes (including repeats).
func (m *Matrix) NumRows() int {
	return len(m.Genes)
}

// NumCols returns the number of samples.
func (m *Matrix) NumCols() int {
	return len(m.Samples)
}

// AddRow appends a copy of values under gene.
func (m *Matrix) AddRow(gene string, values []float64) error {
	if len(values) != len(m.Samples) {
		return fmt.Errorf("gene %s has %d values but the matrix has %d samples", gene, len(values), len(m.Samples))
	}

	m.Genes = append(m.Genes, gene)
	m.Values = append(m.Values, append([]float64(nil), values...))

	return nil
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := New(m.IndexName, m.Samples)
	out.Genes = append(out.Genes, m.Genes...)
	for _, row := range m.Values {
		out.Values = append(out.Values, append([]float64(nil), row...))
	}

	return out
}

// RowsByGene indexes row positions by gene, in row order.
func (m *Matrix) RowsByGene() map[string][]int {
	out := make(map[string][]int, len(m.Genes))
	for i, gene := range m.Genes {
		out[gene] = append(out[gene], i)
	}

	return out
}

// Equal reports whether two matrices hold the same labels and values. NaN is
// considered equal to NaN.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.IndexName != o.IndexName || len(m.Samples) != len(o.Samples) || len(m.Genes) != len(o.Genes) {
		return false
	}
	for i := range m.Samples {
		if m.Samples[i] != o.Samples[i] {
			return false
		}
	}
	for i := range m.Genes {
		if m.Genes[i] != o.Genes[i] || len(m.Values[i]) != len(o.Values[i]) {
			return false
		}
		for j, v := range m.Values[i] {
			w := o.Values[i][j]
			if math.IsNaN(v) && math.IsNaN(w) {
				continue
			}
			if v != w {
				return false
			}
		}
	}

	return true
}
