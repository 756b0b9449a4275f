// Package remap substitutes the gene identifiers of an expression matrix with
// their orthologs from a many-to-many mapping.
//
// Expression rows whose gene has no usable ortholog, and mapping pairs with a
// missing source or target, are dropped without individual diagnostics; only
// their counts are reported in Stats. A complete lack of shared genes is an
// error, ErrNoOverlap.
package remap

import (
	"errors"
	"sort"

	"github.com/carbocation/orthoexpr/exprmatrix"
	"github.com/carbocation/orthoexpr/ortholog"
)

var ErrNoOverlap = errors.New("zero genes intersect between the expression matrix and the ortholog list")

// Stats summarizes what the remapping kept and dropped.
type Stats struct {
	InputRows    int
	Pairs        int
	DroppedPairs int // pairs with a missing source or target
	SharedGenes  int // distinct genes present in both inputs
	UnmappedRows int // expression rows with no usable ortholog
	OutputRows   int
}

// Intersect returns the distinct values present in both a and b, in ascending
// order.
func Intersect(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, v := range a {
		if _, ok := inB[v]; !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)

	return out
}

// Remap returns a new matrix whose rows are the rows of m re-keyed by
// ortholog. Shared genes are visited in ascending order. For each, every
// valid pair (in table order) emits one copy of every expression row of that
// gene, labeled with the pair's target. The result may therefore contain
// repeated genes. Columns are unchanged and values are copied.
func Remap(m *exprmatrix.Matrix, mapping ortholog.Mapping) (*exprmatrix.Matrix, Stats, error) {
	valid := mapping.Valid()

	stats := Stats{
		InputRows:    m.NumRows(),
		Pairs:        len(mapping.Pairs),
		DroppedPairs: len(mapping.Pairs) - len(valid.Pairs),
	}

	shared := Intersect(m.Genes, valid.Sources())
	stats.SharedGenes = len(shared)
	if len(shared) == 0 {
		return nil, stats, ErrNoOverlap
	}

	targets := valid.TargetsBySource()
	rows := m.RowsByGene()

	out := exprmatrix.New(valid.TargetName, m.Samples)
	mappedRows := 0
	for _, gene := range shared {
		mappedRows += len(rows[gene])
		for _, target := range targets[gene] {
			for _, i := range rows[gene] {
				if err := out.AddRow(target, m.Values[i]); err != nil {
					return nil, stats, err
				}
			}
		}
	}

	stats.UnmappedRows = m.NumRows() - mappedRows
	stats.OutputRows = out.NumRows()

	return out, stats, nil
}
