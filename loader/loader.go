// Package loader translates an expression matrix into the gene space of a
// reference species: remapping by ortholog, then collapsing repeated genes by
// their mean.
package loader

import (
	"github.com/carbocation/orthoexpr/aggregate"
	"github.com/carbocation/orthoexpr/exprmatrix"
	"github.com/carbocation/orthoexpr/ortholog"
	"github.com/carbocation/orthoexpr/remap"
)

type Options struct {
	Missing aggregate.MissingPolicy
}

// Report gathers the counts of one Load for display.
type Report struct {
	remap.Stats

	// AggregatedRows is the number of distinct reference genes in the output.
	AggregatedRows int

	// GroupSizes holds, per output row, how many remapped rows were averaged.
	GroupSizes []int
}

// Load returns m re-keyed by ortholog with one row per reference gene, sorted
// ascending. If no gene of m has a usable ortholog, the error is
// remap.ErrNoOverlap and no matrix is returned.
func Load(m *exprmatrix.Matrix, mapping ortholog.Mapping, opts Options) (*exprmatrix.Matrix, Report, error) {
	var report Report

	remapped, stats, err := remap.Remap(m, mapping)
	report.Stats = stats
	if err != nil {
		return nil, report, err
	}

	out, sizes := aggregate.Mean(remapped, opts.Missing)
	report.AggregatedRows = out.NumRows()
	report.GroupSizes = sizes

	return out, report, nil
}
