// Package aggregate collapses repeated gene identifiers of an expression
// matrix into one row per gene.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/carbocation/orthoexpr/exprmatrix"
	"gonum.org/v1/gonum/stat"
)

// MissingPolicy decides how NaN cells take part in a group mean.
type MissingPolicy int

const (
	// SkipMissing averages the non-missing values of each column. A column
	// with no non-missing value in the group stays NaN.
	SkipMissing MissingPolicy = iota

	// PropagateMissing yields NaN for a column if any row of the group is NaN
	// there.
	PropagateMissing
)

var policyNames = map[MissingPolicy]string{
	SkipMissing:      "skip",
	PropagateMissing: "propagate",
}

func (p MissingPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}

	return fmt.Sprintf("MissingPolicy(%d)", int(p))
}

// ParseMissingPolicy accepts "skip" or "propagate".
func ParseMissingPolicy(name string) (MissingPolicy, error) {
	for p, n := range policyNames {
		if strings.EqualFold(name, n) {
			return p, nil
		}
	}

	return SkipMissing, fmt.Errorf("Missing value policy %q is not known. Valid policies: skip, propagate", name)
}

// Mean returns a matrix with one row per distinct gene of m, sorted
// ascending. Each row is the per-column arithmetic mean of all rows of m
// carrying that gene, so a gene seen once passes through unchanged. Samples
// and their order are untouched. The second return value holds, per output
// row, how many input rows were averaged into it.
func Mean(m *exprmatrix.Matrix, policy MissingPolicy) (*exprmatrix.Matrix, []int) {
	rows := m.RowsByGene()

	genes := make([]string, 0, len(rows))
	for gene := range rows {
		genes = append(genes, gene)
	}
	sort.Strings(genes)

	out := exprmatrix.New(m.IndexName, m.Samples)
	sizes := make([]int, 0, len(genes))
	column := make([]float64, 0)
	for _, gene := range genes {
		members := rows[gene]
		values := make([]float64, m.NumCols())
		for j := range values {
			column = column[:0]
			for _, i := range members {
				v := m.Values[i][j]
				if policy == SkipMissing && math.IsNaN(v) {
					continue
				}
				column = append(column, v)
			}
			values[j] = mean(column)
		}

		out.Genes = append(out.Genes, gene)
		out.Values = append(out.Values, values)
		sizes = append(sizes, len(members))
	}

	return out, sizes
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}

	return stat.Mean(x, nil)
}
